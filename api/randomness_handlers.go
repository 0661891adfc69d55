package api

import (
	"net/http"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/gin-gonic/gin"
)

// RequestRandomWinner handles POST /raffles/:id/draw
func (s *Server) RequestRandomWinner(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	var req callerRequest
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

	requestID, err := s.randomnessService(uow).RequestRandomWinner(ctx, req.Caller, raffleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, drawResponse{RequestID: requestID})
}

// FulfillRandomWords handles POST /oracle/fulfillments. The claimed
// coordinator identity is checked by the service layer, same as when the
// fulfillment arrives over the message bus.
func (s *Server) FulfillRandomWords(c *gin.Context) {
	var req fulfillmentRequest
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

	raffle, err := s.randomnessService(uow).FulfillRandomWords(ctx, req.Coordinator, req.RequestID, req.RandomWords)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRaffleResponse(raffle))
}

// ResetStaleRequest handles POST /raffles/:id/draw/reset
func (s *Server) ResetStaleRequest(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	var req callerRequest
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

	if err := s.randomnessService(uow).ResetStaleRequest(ctx, req.Caller, raffleID); err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetOracleConfig handles PUT /platform/oracle-config
func (s *Server) SetOracleConfig(c *gin.Context) {
	var req oracleConfigRequest
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

	cfg := entities.OracleConfig{
		KeyHash:          req.KeyHash,
		SubscriptionID:   req.SubscriptionID,
		Confirmations:    req.Confirmations,
		CallbackGasLimit: req.CallbackGasLimit,
		NativePayment:    req.NativePayment,
	}

	if err := s.randomnessService(uow).SetOracleConfig(ctx, req.Caller, cfg); err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
