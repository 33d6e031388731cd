package gateway

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signatureHeader builds a valid webhook signature header for body at the given time
func (c *Checkout) signatureHeader(at time.Time, body []byte) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(c.sign(ts, body)))
}
