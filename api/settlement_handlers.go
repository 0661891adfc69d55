package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WithdrawWinnings handles POST /raffles/:id/winnings
func (s *Server) WithdrawWinnings(c *gin.Context) {
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

	result, err := s.settlementService(uow).WithdrawWinnings(ctx, req.Caller, raffleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWithdrawalResponse(result))
}

// FinalizeRaffle handles POST /raffles/:id/finalize. Permissionless by
// design, so no caller field.
func (s *Server) FinalizeRaffle(c *gin.Context) {
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

	prize, err := s.settlementService(uow).FinalizeRaffle(ctx, raffleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPrizeResponse(prize))
}

// DepositPrizeNative handles POST /raffles/:id/prize/native
func (s *Server) DepositPrizeNative(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	var req depositNativeRequest
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

	prize, err := s.settlementService(uow).DepositPrizeNative(ctx, req.Caller, raffleID, req.Attached)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPrizeResponse(prize))
}

// DepositPrizeToken handles POST /raffles/:id/prize/token
func (s *Server) DepositPrizeToken(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	var req depositTokenRequest
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

	prize, err := s.settlementService(uow).DepositPrizeToken(ctx, req.Caller, raffleID, req.Token, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPrizeResponse(prize))
}

// DepositPrizeNFT handles POST /raffles/:id/prize/nft
func (s *Server) DepositPrizeNFT(c *gin.Context) {
	raffleID, ok := idParam(c)
	if !ok {
		return
	}

	var req depositNFTRequest
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

	prize, err := s.settlementService(uow).DepositPrizeNFT(ctx, req.Caller, raffleID, req.Collection, req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPrizeResponse(prize))
}

// SetServiceCharge handles PUT /platform/service-charge
func (s *Server) SetServiceCharge(c *gin.Context) {
	var req serviceChargeRequest
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

	if err := s.settlementService(uow).SetServiceCharge(ctx, req.Caller, req.Rate); err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
