package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/livepeer/vod-edge/api"
	"github.com/livepeer/vod-edge/clients"
	"github.com/livepeer/vod-edge/config"
	"github.com/livepeer/vod-edge/handlers"
	"github.com/livepeer/vod-edge/log"
	"github.com/livepeer/vod-edge/metrics"
	"github.com/livepeer/vod-edge/playlist"
	"github.com/livepeer/vod-edge/recording"
	"github.com/peterbourgon/ff/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	fs := flag.NewFlagSet("vod-edge", flag.ExitOnError)
	cli := config.Cli{}

	version := fs.Bool("version", false, "print application version")
	_ = fs.String("config", "", "config file (optional)")

	config.AddrFlag(fs, &cli.HTTPAddress, "http-addr", "0.0.0.0:8989", "Address to bind for CDN origin requests")
	fs.IntVar(&cli.PromPort, "prom-port", 2112, "Prometheus metrics port")
	fs.StringVar(&cli.AWSRegion, "aws-region", "us-east-1", "AWS region for the S3 bucket and IVS channels")
	fs.StringVar(&cli.AWSEndpoint, "aws-endpoint", "", "Override the AWS endpoint, e.g. to point at localstack in development")
	fs.StringVar(&cli.VodBucket, "vod-bucket", "", "Default bucket holding stream recordings. Overridable per request with the "+config.BucketHeader+" header")
	config.CommaMapFlag(fs, &cli.ChannelRoles, "channel-roles", map[string]string{}, "Role to channel ARN mapping, e.g. overview=arn:aws:ivs:...,captain=arn:aws:ivs:...")

	err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix("VOD_EDGE"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing flags: %s\n", err)
		os.Exit(1)
	}

	if *version {
		fmt.Printf("vod-edge version: %s\n", config.Version)
		return
	}

	s3Client, err := clients.NewS3Client(cli.AWSRegion, cli.AWSEndpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating S3 client: %s\n", err)
		os.Exit(1)
	}
	ivsClient, err := clients.NewIVSClient(cli.AWSRegion, cli.AWSEndpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating IVS client: %s\n", err)
		os.Exit(1)
	}

	m := metrics.NewMetrics()
	store := &clients.InstrumentedFetcher{Next: s3Client, Count: m.ObjectFetchCount}
	liveness := &clients.InstrumentedLiveness{Next: ivsClient, Count: m.LivenessQueryCount}

	edgeHandlers := &handlers.EdgeHandlersCollection{
		Defaults:  cli,
		Store:     store,
		Freshness: &playlist.Resolver{Liveness: liveness},
		Recording: &recording.Resolver{Store: store, Liveness: liveness},
		Metrics:   m,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return api.ListenAndServe(ctx, cli.HTTPAddress, edgeHandlers)
	})

	group.Go(func() error {
		return metrics.ListenAndServe(cli.PromPort)
	})

	if err := group.Wait(); err != nil {
		log.LogNoRequestID("shutting down", "err", err)
		os.Exit(1)
	}
}
