package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risa-org/hostsock/client"
	"github.com/risa-org/hostsock/history"
	"github.com/risa-org/hostsock/metrics"
)

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Dial a host endpoint, print events, forward stdin lines as messages",
		RunE:  runConnect,
	}
}

func runConnect(cmd *cobra.Command, args []string) error {
	url := viper.GetString("url")
	if url == "" {
		return fmt.Errorf("--url is required")
	}

	opts := client.DefaultOptions(url)
	opts.Debug = viper.GetBool("debug")
	opts.MaxRetries = viper.GetInt("max-retries")
	opts.Tag = byte(viper.GetUint32("tag"))
	if d := viper.GetDuration("retry-base-delay"); d > 0 {
		opts.RetryBaseDelay = d
	}
	if d := viper.GetDuration("retry-max-delay"); d > 0 {
		opts.RetryMaxDelay = d
	}

	reg := prometheus.NewRegistry()
	opts.Metrics = metrics.New(reg)
	opts.History = history.NewStore(10*time.Minute, time.Minute)

	if addr := viper.GetString("metrics-listen"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "metrics server: %s\n", err)
			}
		}()
		defer srv.Close()
		fmt.Fprintf(os.Stderr, "metrics listening on %s\n", addr)
	}

	done := make(chan struct{})
	c := client.New(opts, client.Handlers{
		OnOpen: func() {
			fmt.Fprintln(os.Stderr, "[open] underlying socket established")
		},
		OnSetup: func(info client.SetupInfo) {
			fmt.Fprintf(os.Stderr, "[setup] clientId=%s leaderId=%s isLeader=%v\n", info.ClientID, info.LeaderID, info.IsLeader)
		},
		OnMessage: func(data string) {
			fmt.Println(data)
		},
		OnClose: func(code int, reason string) {
			fmt.Fprintf(os.Stderr, "[close] code=%d reason=%s\n", code, reason)
			close(done)
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "[error] %s\n", err)
		},
		OnLeaderDisconnect: func(retryCount int) {
			fmt.Fprintf(os.Stderr, "[leader-disconnect] retryCount=%d\n", retryCount)
		},
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := c.Send(scanner.Text()); err != nil {
				fmt.Fprintf(os.Stderr, "send failed: %s\n", err)
			}
		}
	}()

	select {
	case <-sigCh:
		c.Close(1000, "hostsockctl: interrupted")
		<-done
	case <-done:
	}
	return nil
}
