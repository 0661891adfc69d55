package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateRaffle handles POST /raffles
func (s *Server) CreateRaffle(c *gin.Context) {
	var req createRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	raffle, err := s.raffleService(uow).CreateRaffle(ctx, req.Caller, req.Description, req.EndTime, req.MaxTickets, req.AllowMultiple, req.TicketPrice, req.PaymentToken)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRaffleResponse(raffle))
}

// PurchaseTickets handles POST /raffles/:id/tickets
func (s *Server) PurchaseTickets(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	var req purchaseTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	tickets, err := s.raffleService(uow).PurchaseTickets(ctx, req.Caller, raffleID, req.Quantity, req.Attached)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTicketResponses(tickets))
}

// GetRaffle handles GET /raffles/:id
func (s *Server) GetRaffle(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	raffle, err := s.raffleService(uow).GetRaffle(ctx, raffleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRaffleResponse(raffle))
}

// ListRaffles handles GET /raffles
func (s *Server) ListRaffles(c *gin.Context) {
	limit, offset := pagination(c)

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	raffles, err := s.raffleService(uow).ListRaffles(ctx, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRaffleResponses(raffles))
}

// GetTicket handles GET /tickets/:id
func (s *Server) GetTicket(c *gin.Context) {
	ticketID, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	ticket, err := s.raffleService(uow).GetTicket(ctx, ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// ListTickets handles GET /tickets
func (s *Server) ListTickets(c *gin.Context) {
	limit, offset := pagination(c)

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	tickets, err := s.raffleService(uow).ListTickets(ctx, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTicketResponses(tickets))
}

// GetRaffleTicketIDs handles GET /raffles/:id/tickets
func (s *Server) GetRaffleTicketIDs(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	ids, err := s.raffleService(uow).GetRaffleTicketIDs(ctx, raffleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticketIDsResponse{TicketIDs: ids})
}

// GetUserTicketIDs handles GET /users/:owner/tickets
func (s *Server) GetUserTicketIDs(c *gin.Context) {
	owner := c.Param("owner")

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	ids, err := s.raffleService(uow).GetUserTicketIDs(ctx, owner)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticketIDsResponse{TicketIDs: ids})
}

// GetPrize handles GET /raffles/:id/prize
func (s *Server) GetPrize(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	prize, err := s.raffleService(uow).GetPrize(ctx, raffleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPrizeResponse(prize))
}

// GetRaffleStats handles GET /raffles/:id/stats
func (s *Server) GetRaffleStats(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	stats, err := s.raffleService(uow).GetRaffleStats(ctx, raffleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRaffleStatsResponse(stats))
}

// GetPlatformStats handles GET /platform/stats
func (s *Server) GetPlatformStats(c *gin.Context) {
	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	stats, err := s.raffleService(uow).GetPlatformStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPlatformStatsResponse(stats))
}
