package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kprusa/olsrmesh/internal/config"
	"github.com/kprusa/olsrmesh/internal/logging"
	"github.com/kprusa/olsrmesh/internal/metrics"
	"github.com/kprusa/olsrmesh/internal/transport"
	"github.com/kprusa/olsrmesh/olsr"
)

func main() {
	if err := logging.Configure(logging.LevelInfo); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath  string
		multicast   string
		iface       string
		metricsAddr string
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "olsrd",
		Short: "Proactive mesh routing protocol daemon",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelInfo
			if debug {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, configPath, multicast, iface, metricsAddr)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&configPath, "config", "/etc/olsrd/olsrd.yaml", "Path to node config file")
	cmd.Flags().StringVar(&multicast, "multicast", "224.0.0.251:6698", "Control-plane multicast group")
	cmd.Flags().StringVar(&iface, "interface", "", "Network interface to join the multicast group on")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "127.0.0.1:9698", "Prometheus metrics listen address")
	return cmd
}

func run(ctx context.Context, configPath, multicast, iface, metricsAddr string) error {
	file, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if file.NodeID == 0 {
		return fmt.Errorf("config %s: node_id is required", configPath)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)

	tr, err := transport.NewUDPTransport(multicast, iface)
	if err != nil {
		return fmt.Errorf("start transport: %w", err)
	}
	defer tr.Close()

	self := olsr.NodeID(file.NodeID)
	engine := olsr.New(self, file.NodeWillingness(), tr,
		olsr.WithConfig(file.EngineConfig()),
		olsr.WithMetrics(collector))

	slog.Info("olsrd starting", "node_id", self, "multicast", multicast)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	httpSrv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server stopped", "err", err)
		}
	}()
	defer httpSrv.Close()

	go receiveLoop(ctx, tr, engine, self)

	stop := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()
	engine.RunScheduler(stop)
	slog.Info("olsrd shutting down")
	return nil
}

func receiveLoop(ctx context.Context, tr *transport.UDPTransport, engine *olsr.Engine, self olsr.NodeID) {
	for {
		out, err := tr.Recv()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			slog.Warn("receive failed", "err", err)
			continue
		}
		if out.Header.Originator == self {
			continue
		}
		switch payload := out.Payload.(type) {
		case olsr.HelloPayload:
			engine.OnHello(out.Header.Originator, payload)
		case olsr.TCPayload:
			engine.OnTC(out.Header, payload, out.Header.Originator)
		default:
			slog.Warn("dropping control message of unknown payload type", "msg_type", out.Header.MsgType)
		}
	}
}
