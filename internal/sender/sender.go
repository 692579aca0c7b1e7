// Package sender submits compiled reports to a remote NoctuaLight
// serve instance.
package sender

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	"go.uber.org/zap"

	"github.com/JonasZeihe/NoctuaLight/internal/report"
)

const pushTimeout = 30 * time.Second

// payload mirrors the POST /api/v1/reports request body.
type payload struct {
	ID           string    `json:"id"`
	MachineLabel string    `json:"machine_label"`
	Hostname     string    `json:"hostname"`
	GeneratedAt  time.Time `json:"generated_at"`
	Body         string    `json:"body"`
}

// Sender pushes reports over HTTP.
type Sender struct {
	log    *zap.Logger
	url    string
	secret string
}

// New creates a sender targeting the given base URL. When secret is
// non-empty it is sent as the X-API-Key header.
func New(log *zap.Logger, url, secret string) *Sender {
	return &Sender{log: log.Named("sender"), url: url, secret: secret}
}

// Push submits the report and returns once the remote acknowledged it.
func (s *Sender) Push(ctx context.Context, rep *report.Report) error {
	if s.url == "" {
		return fmt.Errorf("push url is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	client, err := kratoshttp.NewClient(ctx, kratoshttp.WithEndpoint(s.url))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", s.url, err)
	}
	defer client.Close()

	hostname, _ := os.Hostname()
	req := payload{
		ID:           rep.ID,
		MachineLabel: rep.MachineLabel,
		Hostname:     hostname,
		GeneratedAt:  rep.GeneratedAt,
		Body:         rep.Body,
	}

	var opts []kratoshttp.CallOption
	if s.secret != "" {
		header := http.Header{"X-API-Key": []string{s.secret}}
		opts = append(opts, kratoshttp.Header(&header))
	}

	var out map[string]string
	if err := client.Invoke(ctx, "POST", "/api/v1/reports", req, &out, opts...); err != nil {
		return fmt.Errorf("push report: %w", err)
	}

	s.log.Info("report pushed",
		zap.String("id", rep.ID), zap.String("url", s.url))
	return nil
}
