package api

import (
	"errors"
	"net/http"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusForError maps domain errors onto HTTP statuses by failure class
func statusForError(err error) int {
	switch {
	case isAny(err,
		entities.ErrRaffleNotFound,
		entities.ErrTicketNotFound,
		entities.ErrPrizeNotFound,
		entities.ErrUnknownRandomnessRequest):
		return http.StatusNotFound

	case isAny(err,
		entities.ErrNotOperator,
		entities.ErrNotCoordinator,
		entities.ErrNotRaffleCreator,
		entities.ErrNotWinner):
		return http.StatusForbidden

	case isAny(err,
		entities.ErrPaymentMismatch,
		entities.ErrInsufficientFunds,
		entities.ErrNotItemOwner):
		return http.StatusPaymentRequired

	case isAny(err,
		entities.ErrInvalidEndTime,
		entities.ErrInvalidMaxTickets,
		entities.ErrInvalidTicketPrice,
		entities.ErrInvalidQuantity,
		entities.ErrInvalidAmount,
		entities.ErrChargeRateTooHigh,
		entities.ErrEmptyRandomWords):
		return http.StatusBadRequest

	case isAny(err,
		entities.ErrRaffleInactive,
		entities.ErrRaffleEnded,
		entities.ErrRaffleNotEnded,
		entities.ErrDrawAlreadyPending,
		entities.ErrNoPendingDraw,
		entities.ErrRequestNotStale,
		entities.ErrWinnerNotSelected,
		entities.ErrWinningsAlreadyWithdrawn,
		entities.ErrRaffleAlreadyFinalized,
		entities.ErrPrizeAlreadyDeposited,
		entities.ErrPrizeNotDeposited,
		entities.ErrMaxTicketsExceeded,
		entities.ErrMultipleTicketsNotAllowed,
		entities.ErrNoTicketsSold):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON with its mapped status
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"path":  c.FullPath(),
			"error": err,
		}).Error("Request failed")
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
