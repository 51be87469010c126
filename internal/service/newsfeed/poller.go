package newsfeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	domrepo "github.com/ciphernom/rektcast/internal/domain/repository"
	xhttp "github.com/ciphernom/rektcast/pkg/http"
	"github.com/ciphernom/rektcast/pkg/logger"
)

// Config for the headline poller.
type Config struct {
	URL      string        `yaml:"url"`
	APIKey   string        `yaml:"apiKey"`
	Query    string        `yaml:"query" default:"bitcoin"`
	Interval time.Duration `yaml:"interval" default:"5m"`
	PageSize int           `yaml:"pageSize" default:"50"`
}

type feedItem struct {
	Title       string `json:"title"`
	Source      source `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

type source struct {
	Title string `json:"title"`
}

type feedResponse struct {
	Results []feedItem `json:"results"`
}

// Poller fetches bitcoin headlines from a REST news feed and appends new
// ones to the headline store. Seen titles are tracked in memory so a
// restart may re-store recent items; the store dedups on read.
type Poller struct {
	cfg    Config
	client *xhttp.Client
	store  domrepo.HeadlineStore
	l      *logger.Logger

	seen   map[string]struct{}
	stopCh chan struct{}
}

func NewPoller(cfg Config, store domrepo.HeadlineStore, l *logger.Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	return &Poller{
		cfg:    cfg,
		client: xhttp.NewClient(xhttp.WithTimeout(15 * time.Second)),
		store:  store,
		l:      l,
		seen:   make(map[string]struct{}),
		stopCh: make(chan struct{}),
	}
}

// Start polls until the context is cancelled or Stop is called. The first
// fetch happens immediately so the scorer has material on boot.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		if err := p.pollOnce(ctx); err != nil {
			p.l.Warn("initial headline poll failed", logger.Error(err))
		}
		ticker := time.NewTicker(p.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopCh:
				return
			case <-ticker.C:
				if err := p.pollOnce(ctx); err != nil {
					p.l.Warn("headline poll failed", logger.Error(err))
				}
			}
		}
	}()
}

func (p *Poller) Stop() {
	close(p.stopCh)
}

func (p *Poller) pollOnce(ctx context.Context) error {
	if p.cfg.URL == "" {
		return fmt.Errorf("newsfeed url not configured")
	}

	var resp feedResponse
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.cfg.URL,
		QueryParams: map[string][]string{
			"auth_token": {p.cfg.APIKey},
			"currencies": {"BTC"},
			"q":          {p.cfg.Query},
			"page_size":  {fmt.Sprintf("%d", p.cfg.PageSize)},
		},
	}, &resp)
	if err != nil {
		return fmt.Errorf("fetch headlines: %w", err)
	}

	fresh := make([]models.Headline, 0, len(resp.Results))
	for _, item := range resp.Results {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, ok := p.seen[key]; ok {
			continue
		}
		p.seen[key] = struct{}{}

		ts := time.Now().UTC()
		if item.PublishedAt != "" {
			if parsed, perr := time.Parse(time.RFC3339, item.PublishedAt); perr == nil {
				ts = parsed.UTC()
			}
		}
		fresh = append(fresh, models.Headline{
			Title:     title,
			Source:    item.Source.Title,
			URL:       item.URL,
			Timestamp: ts,
		})
	}

	if len(fresh) == 0 {
		return nil
	}
	if err := p.store.Store(ctx, fresh); err != nil {
		return fmt.Errorf("store headlines: %w", err)
	}
	p.l.Info("headlines ingested", logger.Int("count", len(fresh)))

	// Bound the dedup set; the store handles long-term dedup.
	if len(p.seen) > 10000 {
		p.seen = make(map[string]struct{})
	}
	return nil
}
