package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
)

// maxTicksPerRequest bounds how far one POST /tick may advance the simulation.
const maxTicksPerRequest = 100000

var serveAddr string

// simServer exposes a live simulation over HTTP. Every handler holds mu, so a
// reader never observes a partially executed tick.
type simServer struct {
	mu  sync.Mutex
	sim *sim.Simulator
}

func newSimServer(s *sim.Simulator) *simServer {
	return &simServer{sim: s}
}

// routes builds the API router.
func (srv *simServer) routes() *httprouter.Router {
	router := httprouter.New()
	router.GET("/snapshot", srv.getSnapshot)
	router.POST("/tick", srv.postTick)
	router.GET("/metrics", srv.getMetrics)
	router.GET("/config", srv.getConfig)
	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("encoding response: %v", err)
	}
}

func (srv *simServer) getSnapshot(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	srv.mu.Lock()
	snap := srv.sim.Snapshot()
	srv.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

// postTick advances the simulation by ?n= ticks (default 1) and returns the
// snapshot after the last one.
func (srv *simServer) postTick(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	n := int64(1)
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > maxTicksPerRequest {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "n must be an integer in [1, " + strconv.Itoa(maxTicksPerRequest) + "]",
			})
			return
		}
		n = parsed
	}

	srv.mu.Lock()
	srv.sim.RunFor(n)
	snap := srv.sim.Snapshot()
	srv.mu.Unlock()
	logrus.Debugf("[tick %07d] advanced %d ticks over HTTP", snap.Tick, n)
	writeJSON(w, http.StatusOK, snap)
}

func (srv *simServer) getMetrics(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	srv.mu.Lock()
	data, err := json.Marshal(srv.sim.Metrics)
	srv.mu.Unlock()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_, _ = w.Write(data)
}

func (srv *simServer) getConfig(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	srv.mu.Lock()
	cfg := srv.sim.Config
	srv.mu.Unlock()
	writeJSON(w, http.StatusOK, cfg)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live simulation over HTTP, advancing it on POST /tick",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		s, err := buildSimulator(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		server := &http.Server{
			Addr:              serveAddr,
			Handler:           newSimServer(s).routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logrus.Errorf("Shutdown: %v", err)
			}
		}()

		logrus.Infof("Serving simulation on %s", serveAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
		logrus.Infof("[tick %07d] Server stopped", s.Clock)
	},
}

func init() {
	addSimFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(serveCmd)
}
