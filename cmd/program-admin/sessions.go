package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
)

const (
	sessionKeyPattern   = "session:*"
	rateLimitKeyPattern = "ratelimit:*"
	redisCommandTimeout = 2 * time.Minute
)

func runListSessions(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, redisCommandTimeout)
	defer cancel()

	_, redisClient, err := connectInfraWithOptions(&connectInfraOptions{
		Logger:    cmdCtx.Logger,
		Config:    &cmdCtx.Config,
		WantDB:    false,
		WantRedis: true,
	})
	if err != nil {
		return err
	}
	if redisClient == nil {
		if writeErr := writeln(os.Stderr, "Redis client is not available"); writeErr != nil {
			return fmt.Errorf("print redis availability: %w", writeErr)
		}
		return nil
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	cmdCtx.Logger.Info("scanning redis", "pattern", sessionKeyPattern)

	iter := redisClient.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	if headerErr := writef(os.Stdout, "\nActive Sessions in Redis\n"); headerErr != nil {
		return fmt.Errorf("print session header: %w", headerErr)
	}

	total, iterErr := writeSessionKeys(sessionScanInput{
		Ctx:    ctx,
		Iter:   iter,
		Client: redisClient,
		Logger: cmdCtx.Logger,
	})
	if iterErr != nil {
		return iterErr
	}

	if total == 0 {
		if nonePrintErr := writeln(os.Stdout, "(no sessions found)"); nonePrintErr != nil {
			return fmt.Errorf("print session none: %w", nonePrintErr)
		}
		return nil
	}

	if totalPrintErr := writef(os.Stdout, "\nTotal sessions: %d\n", total); totalPrintErr != nil {
		return fmt.Errorf("print session total: %w", totalPrintErr)
	}
	return nil
}

type sessionScanInput struct {
	Ctx    context.Context
	Iter   *redis.ScanIterator
	Client redis.UniversalClient
	Logger *slog.Logger
}

func writeSessionKeys(input sessionScanInput) (int, error) {
	if input.Iter == nil {
		return 0, errors.New("redis scan: nil iterator")
	}

	printer := sessionKeyPrinter{
		ctx:    input.Ctx,
		client: input.Client,
		logger: input.Logger,
	}

	total := 0
	for input.Iter.Next(input.Ctx) {
		key := input.Iter.Val()
		total++

		if err := printer.print(key); err != nil {
			return 0, err
		}
	}

	if err := input.Iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}

	return total, nil
}

type sessionKeyPrinter struct {
	ctx    context.Context
	client redis.UniversalClient
	logger *slog.Logger
}

func (p *sessionKeyPrinter) print(key string) error {
	if p == nil {
		return errors.New("session printer: nil receiver")
	}

	ttl, ttlErr := p.client.TTL(p.ctx, key).Result()
	if ttlErr != nil {
		if p.logger != nil {
			p.logger.ErrorContext(p.ctx, "failed to fetch TTL", "key", key, "error", ttlErr)
		}
		if ttlPrintErr := writef(os.Stdout, "  %s (TTL: error: %v)\n", key, ttlErr); ttlPrintErr != nil {
			return fmt.Errorf("print session key ttl error: %w", ttlPrintErr)
		}
		return nil
	}

	summary := p.describeSession(key)
	if ttlPrintErr := writef(os.Stdout, "  %s %s(TTL: %s)\n", key, summary, renderTTL(ttl)); ttlPrintErr != nil {
		return fmt.Errorf("print session key ttl: %w", ttlPrintErr)
	}
	return nil
}

// describeSession returns a "user=<id> email=<email> " fragment when the
// session payload decodes, or an empty string when it does not.
func (p *sessionKeyPrinter) describeSession(key string) string {
	raw, err := p.client.Get(p.ctx, key).Result()
	if err != nil {
		return ""
	}
	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(raw), &sess); unmarshalErr != nil {
		return ""
	}
	if sess.UserID == "" && sess.Email == "" {
		return ""
	}
	return fmt.Sprintf("user=%s email=%s ", sess.UserID, sess.Email)
}

type rateLimitClearOptions struct {
	DryRun bool
	Yes    bool
}

func (o rateLimitClearOptions) IsDryRun() bool    { return o.DryRun }
func (o rateLimitClearOptions) IsYes() bool       { return o.Yes }
func (o rateLimitClearOptions) GetAction() string { return "delete all rate limit counters" }
func (o rateLimitClearOptions) GetTarget() string { return "Redis keys matching " + rateLimitKeyPattern }

func parseRateLimitClearFlags(args []string) (rateLimitClearOptions, error) {
	fs := flag.NewFlagSet("clear-rate-limits", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := rateLimitClearOptions{}
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without deleting")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return rateLimitClearOptions{}, err
	}
	return opts, nil
}

func runClearRateLimits(cmdCtx *commandContext, args []string) error {
	opts, err := parseRateLimitClearFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmAction(confirmOptions{
		Yes:    opts.Yes,
		DryRun: opts.DryRun,
		Action: opts.GetAction(),
		Target: opts.GetTarget(),
	}); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, redisCommandTimeout)
	defer cancel()

	_, redisClient, err := connectInfraWithOptions(&connectInfraOptions{
		Logger:    cmdCtx.Logger,
		Config:    &cmdCtx.Config,
		WantDB:    false,
		WantRedis: true,
	})
	if err != nil {
		return err
	}
	if redisClient == nil {
		if writeErr := writeln(os.Stderr, "Redis client is not available"); writeErr != nil {
			return fmt.Errorf("print redis availability: %w", writeErr)
		}
		return nil
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	stats, err := deleteRateLimitKeys(&rateLimitDeleteRequest{
		Ctx:      ctx,
		Logger:   cmdCtx.Logger,
		Redis:    redisClient,
		DryRun:   opts.DryRun,
		BatchCap: 1000,
	})
	if err != nil {
		return err
	}

	if stats.total == 0 {
		if writeErr := writeln(os.Stdout, "No rate limit keys found in Redis"); writeErr != nil {
			return fmt.Errorf("print rate limit summary: %w", writeErr)
		}
		return nil
	}

	if opts.DryRun {
		if writeErr := writef(os.Stdout, "Dry-run: would delete %d keys\n", stats.total); writeErr != nil {
			return fmt.Errorf("print rate limit dry run: %w", writeErr)
		}
		return nil
	}

	return printRateLimitSummary(stats)
}

type rateLimitDeleteRequest struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Redis    redis.UniversalClient
	DryRun   bool
	BatchCap int
}

type rateLimitDeleteStats struct {
	total    int
	deleted  int
	failures int
}

func deleteRateLimitKeys(req *rateLimitDeleteRequest) (rateLimitDeleteStats, error) {
	if req == nil || req.Redis == nil {
		return rateLimitDeleteStats{}, errors.New("redis client is required")
	}
	if req.BatchCap <= 0 {
		req.BatchCap = 1000
	}

	req.Logger.Info("scanning redis", "pattern", rateLimitKeyPattern, "dry_run", req.DryRun)

	var (
		stats rateLimitDeleteStats
		batch []string
	)

	flush := func() {
		if len(batch) == 0 || req.DryRun {
			batch = batch[:0]
			return
		}
		deleted, delErr := req.Redis.Del(req.Ctx, batch...).Result()
		if delErr != nil {
			stats.failures++
			req.Logger.ErrorContext(req.Ctx, "failed to delete key batch", "size", len(batch), "error", delErr)
		} else {
			stats.deleted += int(deleted)
		}
		batch = batch[:0]
	}

	iter := req.Redis.Scan(req.Ctx, 0, rateLimitKeyPattern, 100).Iterator()
	for iter.Next(req.Ctx) {
		stats.total++
		batch = append(batch, iter.Val())
		if len(batch) >= req.BatchCap {
			flush()
		}
	}
	if err := iter.Err(); err != nil {
		return rateLimitDeleteStats{}, fmt.Errorf("redis scan: %w", err)
	}
	flush()

	return stats, nil
}

func printRateLimitSummary(stats rateLimitDeleteStats) error {
	if err := writef(os.Stdout, "Processed %d rate limit keys\n", stats.total); err != nil {
		return fmt.Errorf("print rate limit processed: %w", err)
	}
	if err := writef(os.Stdout, "Deleted %d/%d keys\n", stats.deleted, stats.total); err != nil {
		return fmt.Errorf("print rate limit deleted: %w", err)
	}
	if stats.failures == 0 {
		return nil
	}
	if err := writef(os.Stdout, "Failed batches: %d\n", stats.failures); err != nil {
		return fmt.Errorf("print rate limit failures: %w", err)
	}
	return nil
}
