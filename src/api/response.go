package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lost-woods/randtest/src/battery"
	"github.com/lost-woods/randtest/src/report"
)

// batteryResponse is the JSON body of a successful POST /battery.
type batteryResponse struct {
	RequestID string           `json:"request_id"`
	Mode      string           `json:"mode"`
	Length    int              `json:"length"`
	Results   []battery.Result `json:"results"`
}

// text renders the response as the plain report followed by the request id.
func (r batteryResponse) text() string {
	var out bytes.Buffer
	w := report.New(&out, report.FormatText, false)
	_ = w.Banner("request", r.Length)
	for _, res := range r.Results {
		_ = w.Result(res)
	}
	return strings.TrimRight(out.String(), "\n") + "\nrequest_id: " + r.RequestID
}

type errorResponse struct {
	Error string `json:"error"`
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), "application/json")
}

func writeBattery(c *gin.Context, r batteryResponse) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, r)
		return
	}
	c.String(http.StatusOK, r.text())
}

func writeError(c *gin.Context, status int, msg string) {
	if wantsJSON(c) {
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	c.String(status, msg)
}
