// Package web is the trace visualizer: a small websocket-driven HTTP
// server that runs transactions against a loaded set of contracts and
// streams each step's root transition to connected clients as it
// happens. Adapted from the teacher's root server (main.go): same
// lock-guarded server struct, same echo + gorilla/websocket + logrus
// wiring, now broadcasting step_roots instead of challenge-protocol
// assertion/challenge events.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/bf-rollup/obf/jsonio"
	"github.com/bf-rollup/obf/proof"
	"github.com/bf-rollup/obf/state"
)

var (
	log      = logrus.WithField("prefix", "web")
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
)

// Config controls one running visualizer instance.
type Config struct {
	Port          uint
	InitStatePath string
}

// Server holds the loaded contracts and the set of currently-connected
// websocket clients, exactly the shape of the teacher's server struct
// minus the on-chain assertion chain it no longer has any use for.
type Server struct {
	lock      sync.RWMutex
	ctx       context.Context
	cfg       Config
	contracts map[uint8]state.ContractValue
	wsClients map[*websocket.Conn]bool
}

// New loads cfg.InitStatePath and returns a Server ready to register
// routes on, without starting to listen.
func New(ctx context.Context, cfg Config) (*Server, error) {
	data, err := os.ReadFile(cfg.InitStatePath)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	contracts, err := jsonio.LoadInitState(data)
	if err != nil {
		return nil, err
	}
	return &Server{
		ctx:       ctx,
		cfg:       cfg,
		contracts: contracts,
		wsClients: map[*websocket.Conn]bool{},
	}, nil
}

// Serve loads cfg.InitStatePath, registers routes, and blocks serving
// HTTP until ctx is canceled or the listener fails.
func Serve(ctx context.Context, cfg Config) error {
	s, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			return nil
		},
	}))
	s.registerRoutes(e)

	log.Infof("visualizer listening on port %d, %d contract(s) loaded", cfg.Port, len(s.contracts))
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: e}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/api/ws", s.registerWebsocketConnection)
	e.GET("/api/contracts", s.renderContracts)
	e.POST("/api/transition", s.triggerTransition)
	e.POST("/api/gen", s.triggerGen)
}

func (s *Server) renderContracts(c echo.Context) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	type contractSummary struct {
		Slot  uint8  `json:"slot"`
		Root  string `json:"root"`
		Ops   int    `json:"ops"`
		Cells int    `json:"cells"`
	}
	out := make([]contractSummary, 0, len(s.contracts))
	for slot, cv := range s.contracts {
		out = append(out, contractSummary{
			Slot:  slot,
			Root:  jsonio.EncodeRoot(state.BuildContract(cv).Root()),
			Ops:   len(cv.Code),
			Cells: len(cv.Cells),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) registerWebsocketConnection(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return err
	}
	s.lock.Lock()
	s.wsClients[ws] = true
	s.lock.Unlock()
	return nil
}

// stepEvent is one broadcast unit: a single step_roots transition, sent
// to every connected client as it is produced (mirrors the teacher's
// event struct, one field per challenge-protocol event it used to carry).
type stepEvent struct {
	Step       int    `json:"step"`
	PreRoot    string `json:"pre_root"`
	PostRoot   string `json:"post_root"`
	ResultCode string `json:"result_code"`
	Final      bool   `json:"final"`
}

func (s *Server) broadcast(ev stepEvent) {
	enc, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Error("encoding step event")
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for client := range s.wsClients {
		if err := client.WriteMessage(websocket.TextMessage, enc); err != nil {
			client.Close()
			delete(s.wsClients, client)
		}
	}
}

type transitionRequest struct {
	Sender   string `json:"sender"`
	Contract uint8  `json:"contract"`
	Tx       string `json:"tx"`
}

// triggerTransition runs one transaction to completion, broadcasting
// every intermediate step_roots transition to connected clients as it
// happens, and returns the final root and result code.
func (s *Server) triggerTransition(c echo.Context) error {
	req, contract, err := s.decodeTxRequest(c)
	if err != nil {
		return err
	}

	sender, err := jsonio.DecodeAddress(req.Sender)
	if err != nil {
		return err
	}
	payload, err := jsonio.DecodeBytes(req.Tx)
	if err != nil {
		return err
	}

	cur := state.ParseTx(sender, contract, payload)
	step := 0
	for state.DecodeStep(cur).ResultCode == state.Running {
		next := state.NextStep(cur)
		sv := state.DecodeStep(next)
		ev := stepEvent{
			Step:       step,
			PreRoot:    jsonio.EncodeRoot(cur.Root.Root()),
			PostRoot:   jsonio.EncodeRoot(next.Root.Root()),
			ResultCode: sv.ResultCode.String(),
			Final:      sv.ResultCode != state.Running,
		}
		s.broadcast(ev)
		cur = next
		step++
		if step > state.SanityStepLimit {
			return fmt.Errorf("web: transaction did not terminate within the sanity limit")
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"steps":       step,
		"final_root":  jsonio.EncodeRoot(cur.Root.Root()),
		"result_code": state.DecodeStep(cur).ResultCode.String(),
	})
}

// triggerGen runs the full proof generator and reports its size, without
// streaming the whole trace back over the websocket.
func (s *Server) triggerGen(c echo.Context) error {
	req, contract, err := s.decodeTxRequest(c)
	if err != nil {
		return err
	}
	sender, err := jsonio.DecodeAddress(req.Sender)
	if err != nil {
		return err
	}
	payload, err := jsonio.DecodeBytes(req.Tx)
	if err != nil {
		return err
	}
	initial := state.ParseTx(sender, contract, payload)
	trace, err := proof.Generate(initial)
	if err != nil {
		return err
	}
	s.broadcast(stepEvent{
		Step:       len(trace.Access),
		PreRoot:    jsonio.EncodeRoot(trace.StepRoots[0]),
		PostRoot:   jsonio.EncodeRoot(trace.StepRoots[len(trace.StepRoots)-1]),
		ResultCode: "generated",
		Final:      true,
	})
	return c.JSON(http.StatusOK, map[string]any{
		"steps": len(trace.Access),
		"nodes": len(trace.Nodes),
	})
}

func (s *Server) decodeTxRequest(c echo.Context) (transitionRequest, state.ContractValue, error) {
	var req transitionRequest
	defer c.Request().Body.Close()
	enc, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return req, state.ContractValue{}, err
	}
	if err := json.Unmarshal(enc, &req); err != nil {
		return req, state.ContractValue{}, err
	}
	s.lock.RLock()
	contract, ok := s.contracts[req.Contract]
	s.lock.RUnlock()
	if !ok {
		return req, state.ContractValue{}, fmt.Errorf("web: contract slot %d not loaded", req.Contract)
	}
	return req, contract, nil
}
