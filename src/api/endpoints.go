package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lost-woods/randtest/src/battery"
	"github.com/lost-woods/randtest/src/bits"
)

// textBytesPerBit allows a separator pair such as "\r\n" after every digit.
const textBytesPerBit = 3

// bodyLimit bounds the raw request body. Only packed and unpacked bodies map
// bytes to bits exactly; the decoded length is checked by the battery.
func bodyLimit(m bits.Mode, maxBits int) int64 {
	switch m {
	case bits.Packed:
		return int64(maxBits+7) / 8
	case bits.Text:
		return int64(maxBits) * textBytesPerBit
	}
	return int64(maxBits)
}

// RunBattery decodes the request body under ?mode= (default packed) and runs
// every test against it.
func (h *Handlers) RunBattery(c *gin.Context) {
	mode, err := bits.ParseMode(c.DefaultQuery("mode", "packed"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "Mode must be one of unpacked, packed or text.")
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit(mode, h.maxBits))
	seq, err := bits.Decode(body, mode)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Sequence must not exceed %d bits.", h.maxBits))
			return
		}
		writeError(c, http.StatusUnprocessableEntity, "Sequence could not be read: no bits decoded.")
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	results, err := h.battery.RunContext(ctx, seq)
	switch {
	case errors.Is(err, battery.ErrResourceExhausted):
		writeError(c, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.log.Warnw("battery request abandoned", "bits", seq.Len(), "error", err)
		writeError(c, http.StatusServiceUnavailable, "Battery did not finish in time.")
		return
	case err != nil:
		writeError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	requestID, err := uuid.NewRandom()
	if err != nil {
		h.log.Error(err)
		writeError(c, http.StatusInternalServerError, "Error generating request id.")
		return
	}

	h.log.Infow("battery request", "request_id", requestID.String(), "mode", mode.String(), "bits", seq.Len())
	writeBattery(c, batteryResponse{
		RequestID: requestID.String(),
		Mode:      mode.String(),
		Length:    seq.Len(),
		Results:   results,
	})
}

func (h *Handlers) Health(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	c.String(http.StatusOK, "OK")
}
