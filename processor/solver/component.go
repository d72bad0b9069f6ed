// Package solver provides a processor that consumes STRIPS solve
// requests from JetStream, runs breadth-first search over the parsed
// planning task, and publishes the resulting plan.
package solver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/stripsolve/pddl/parser"
	"github.com/c360studio/stripsolve/planner"
)

// Component implements the solver processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	parser *parser.Parser

	// JetStream consumer
	js       jetstream.JetStream
	consumer jetstream.Consumer
	stream   jetstream.Stream

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	requestsProcessed atomic.Int64
	solvesCompleted   atomic.Int64
	solvesFailed      atomic.Int64
	lastActivityMu    sync.RWMutex
	lastActivity      time.Time
}

// NewComponent creates a new solver processor.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Apply defaults
	defaults := DefaultConfig()
	if config.StreamName == "" {
		config.StreamName = defaults.StreamName
	}
	if config.ConsumerName == "" {
		config.ConsumerName = defaults.ConsumerName
	}
	if config.RequestSubject == "" {
		config.RequestSubject = defaults.RequestSubject
	}
	if config.ResultSubjectPrefix == "" {
		config.ResultSubjectPrefix = defaults.ResultSubjectPrefix
	}
	if config.SolveTimeout == "" {
		config.SolveTimeout = defaults.SolveTimeout
	}
	if config.Ports == nil {
		config.Ports = defaults.Ports
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Component{
		name:       "solver",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
		parser:     parser.New(),
	}, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	c.logger.Debug("Initialized solver",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"request_subject", c.config.RequestSubject)
	return nil
}

// Start begins processing solve requests.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	c.running = true
	c.startTime = time.Now()

	subCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	js, err := c.natsClient.JetStream()
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get jetstream: %w", err)
	}
	c.js = js

	stream, err := js.Stream(subCtx, c.config.StreamName)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get stream %s: %w", c.config.StreamName, err)
	}
	c.stream = stream

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		FilterSubject: c.config.RequestSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.GetSolveTimeout() + 30*time.Second,
		MaxDeliver:    3,
	}

	consumer, err := stream.CreateOrUpdateConsumer(subCtx, consumerConfig)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("create consumer: %w", err)
	}
	c.consumer = consumer

	go c.consumeLoop(subCtx)

	c.logger.Info("solver started",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"subject", c.config.RequestSubject)

	return nil
}

func (c *Component) rollbackStart(cancel context.CancelFunc) {
	c.mu.Lock()
	c.running = false
	c.cancel = nil
	c.mu.Unlock()
	cancel()
}

// consumeLoop continuously consumes messages from the JetStream consumer.
func (c *Component) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := c.consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Debug("Fetch timeout or error", "error", err)
			continue
		}

		for msg := range msgs.Messages() {
			c.handleMessage(ctx, msg)
		}

		if msgs.Error() != nil && msgs.Error() != context.DeadlineExceeded {
			c.logger.Warn("Message fetch error", "error", msgs.Error())
		}
	}
}

// handleMessage processes a single solve request.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	if ctx.Err() != nil {
		if err := msg.Nak(); err != nil {
			c.logger.Warn("Failed to NAK message during shutdown", "error", err)
		}
		return
	}

	c.requestsProcessed.Add(1)
	c.updateLastActivity()

	var req Request
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		c.logger.Error("Failed to parse solve request", "error", err)
		// Malformed requests can never succeed on redelivery.
		if err := msg.Ack(); err != nil {
			c.logger.Warn("Failed to ACK message", "error", err)
		}
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	c.logger.Info("Processing solve request", "request_id", req.RequestID)

	result := c.solve(ctx, &req)

	if result.Status == "completed" {
		c.solvesCompleted.Add(1)
	} else {
		c.solvesFailed.Add(1)
	}

	if err := c.publishResult(ctx, result); err != nil {
		c.logger.Error("Failed to publish solve result",
			"request_id", req.RequestID,
			"error", err)
		if err := msg.Nak(); err != nil {
			c.logger.Warn("Failed to NAK message", "error", err)
		}
		return
	}

	if err := msg.Ack(); err != nil {
		c.logger.Warn("Failed to ACK message", "error", err)
	}

	c.logger.Info("Solve request finished",
		"request_id", req.RequestID,
		"status", result.Status,
		"solvable", result.Solvable,
		"plan_length", len(result.Plan),
		"elapsed_ms", result.ElapsedMS)
}

// solve parses the request's PDDL text and runs the planner under the
// configured timeout.
func (c *Component) solve(ctx context.Context, req *Request) *Result {
	start := time.Now()
	result := &Result{RequestID: req.RequestID}

	fail := func(status string, err error) *Result {
		elapsed := time.Since(start)
		result.Status = "failed"
		if status == "timeout" {
			result.Status = "timeout"
		}
		result.Error = err.Error()
		result.ElapsedMS = elapsed.Milliseconds()
		solveRequests.WithLabelValues(status).Inc()
		solveDuration.WithLabelValues(status).Observe(elapsed.Seconds())
		return result
	}

	if err := req.Validate(); err != nil {
		return fail("error", err)
	}

	d, err := c.parser.ParseDomain("request.domain", req.Domain)
	if err != nil {
		return fail("error", fmt.Errorf("parse domain: %w", err))
	}
	pr, err := c.parser.ParseProblem(d, "request.problem", req.Problem)
	if err != nil {
		return fail("error", fmt.Errorf("parse problem: %w", err))
	}

	solveCtx := ctx
	if timeout := c.config.GetSolveTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := planner.Solve(solveCtx, d, pr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fail("timeout", fmt.Errorf("solve timed out after %s", c.config.GetSolveTimeout()))
		}
		return fail("error", err)
	}

	elapsed := time.Since(start)
	result.Status = "completed"
	result.Solvable = res.Solvable
	result.StatesExpanded = res.StatesExpanded
	result.StatesVisited = res.StatesVisited
	result.ElapsedMS = elapsed.Milliseconds()

	status := "unsolvable"
	if res.Solvable {
		status = "solved"
		result.Plan = make([]string, len(res.Plan))
		for i, act := range res.Plan {
			result.Plan[i] = act.Signature()
		}
		planLength.Observe(float64(len(res.Plan)))
	}
	solveRequests.WithLabelValues(status).Inc()
	solveDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	statesExpanded.Observe(float64(res.StatesExpanded))

	return result
}

// publishResult publishes the result on the result subject for the request.
func (c *Component) publishResult(ctx context.Context, result *Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	subject := c.config.ResultSubjectPrefix + "." + result.RequestID
	if _, err := c.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	c.logger.Debug("Published solve result",
		"request_id", result.RequestID,
		"subject", subject)
	return nil
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}

	cancel := c.cancel
	c.running = false
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	c.logger.Info("solver stopped",
		"requests_processed", c.requestsProcessed.Load(),
		"solves_completed", c.solvesCompleted.Load(),
		"solves_failed", c.solvesFailed.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "solver",
		Type:        "processor",
		Description: "Solves STRIPS planning problems with breadth-first search",
		Version:     "0.1.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = component.Port{
			Name:        portDef.Name,
			Direction:   component.DirectionInput,
			Required:    portDef.Required,
			Description: portDef.Description,
			Config: component.NATSPort{
				Subject: portDef.Subject,
			},
		}
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = component.Port{
			Name:        portDef.Name,
			Direction:   component.DirectionOutput,
			Required:    portDef.Required,
			Description: portDef.Description,
			Config: component.NATSPort{
				Subject: portDef.Subject,
			},
		}
	}
	return ports
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return solverSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.solvesFailed.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
