package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/application"
	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"
	"github.com/Samuel1-ona/tikka-contracts/domain/services"

	"github.com/gin-gonic/gin"
)

// ServerConfig carries the platform identities the service layer checks
// callers against
type ServerConfig struct {
	Operator    string
	Coordinator string
	Escrow      string
	StaleAfter  time.Duration
	DevMode     bool
}

// Server holds the dependencies for the HTTP handlers. Every handler runs its
// operation inside a fresh unit of work.
type Server struct {
	uowFactory application.UnitOfWorkFactory
	cfg        ServerConfig
}

// NewServer creates a new API server
func NewServer(uowFactory application.UnitOfWorkFactory, cfg ServerConfig) *Server {
	return &Server{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// RegisterRoutes registers all the application routes
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", s.Health)

	router.POST("/raffles", s.CreateRaffle)
	router.GET("/raffles", s.ListRaffles)
	router.GET("/raffles/:id", s.GetRaffle)
	router.POST("/raffles/:id/tickets", s.PurchaseTickets)
	router.GET("/raffles/:id/tickets", s.GetRaffleTicketIDs)
	router.GET("/raffles/:id/stats", s.GetRaffleStats)
	router.GET("/raffles/:id/prize", s.GetPrize)
	router.POST("/raffles/:id/draw", s.RequestRandomWinner)
	router.POST("/raffles/:id/draw/reset", s.ResetStaleRequest)
	router.POST("/raffles/:id/winnings", s.WithdrawWinnings)
	router.POST("/raffles/:id/finalize", s.FinalizeRaffle)
	router.POST("/raffles/:id/prize/native", s.DepositPrizeNative)
	router.POST("/raffles/:id/prize/token", s.DepositPrizeToken)
	router.POST("/raffles/:id/prize/nft", s.DepositPrizeNFT)

	router.GET("/tickets", s.ListTickets)
	router.GET("/tickets/:id", s.GetTicket)
	router.GET("/users/:owner/tickets", s.GetUserTicketIDs)

	router.GET("/platform/stats", s.GetPlatformStats)
	router.PUT("/platform/service-charge", s.SetServiceCharge)
	router.PUT("/platform/oracle-config", s.SetOracleConfig)

	router.POST("/oracle/fulfillments", s.FulfillRandomWords)

	// Funding endpoints exist only for local runs; production balances come
	// from outside this system
	if s.cfg.DevMode {
		dev := router.Group("/dev")
		dev.POST("/mint/native", s.MintNative)
		dev.POST("/mint/token", s.MintToken)
		dev.POST("/mint/nft", s.MintNFT)
		dev.GET("/balance", s.GetBalance)
	}
}

// Health reports liveness
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// raffleService builds a raffle service bound to the unit of work's transaction
func (s *Server) raffleService(uow application.UnitOfWork) interfaces.RaffleService {
	return services.NewRaffleService(
		uow.RaffleRepository(),
		uow.TicketRepository(),
		uow.PrizeRepository(),
		uow.NativeBank(),
		uow.TokenClient(),
		uow.EventBus(),
		s.cfg.Escrow,
	)
}

// randomnessService builds a randomness service bound to the unit of work's transaction
func (s *Server) randomnessService(uow application.UnitOfWork) interfaces.RandomnessService {
	return services.NewRandomnessService(
		uow.RaffleRepository(),
		uow.TicketRepository(),
		uow.RandomnessRequestRepository(),
		uow.PlatformSettingsRepository(),
		uow.EventBus(),
		s.cfg.Operator,
		s.cfg.Coordinator,
		s.cfg.StaleAfter,
	)
}

// settlementService builds a settlement service bound to the unit of work's transaction
func (s *Server) settlementService(uow application.UnitOfWork) interfaces.SettlementService {
	return services.NewSettlementService(
		uow.RaffleRepository(),
		uow.PrizeRepository(),
		uow.PlatformSettingsRepository(),
		uow.NativeBank(),
		uow.TokenClient(),
		uow.NFTClient(),
		uow.EventBus(),
		s.cfg.Operator,
		s.cfg.Escrow,
	)
}

// idParam parses the :id path parameter, writing a 400 response on failure
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// pagination parses limit and offset query parameters with defaults
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
