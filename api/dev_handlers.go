package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MintNative handles POST /dev/mint/native
func (s *Server) MintNative(c *gin.Context) {
	var req mintNativeRequest
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

	if err := uow.NativeBank().Mint(ctx, req.Address, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MintToken handles POST /dev/mint/token
func (s *Server) MintToken(c *gin.Context) {
	var req mintTokenRequest
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

	if err := uow.TokenClient().Mint(ctx, req.Token, req.Address, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MintNFT handles POST /dev/mint/nft
func (s *Server) MintNFT(c *gin.Context) {
	var req mintNFTRequest
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

	if err := uow.NFTClient().Mint(ctx, req.Collection, req.ItemID, req.Address); err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBalance handles GET /dev/balance?address=...&token=...
func (s *Server) GetBalance(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "address is required"})
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	resp := balanceResponse{Address: address}

	if token := c.Query("token"); token != "" {
		balance, err := uow.TokenClient().BalanceOf(ctx, token, address)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Token = &token
		resp.Balance = balance
	} else {
		balance, err := uow.NativeBank().BalanceOf(ctx, address)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Balance = balance
	}

	c.JSON(http.StatusOK, resp)
}
