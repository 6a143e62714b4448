package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	fieldsimilarity "github.com/baditaflorin/go_field_similarity"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
	DefaultBulkWorkers    = 4
)

var (
	// Scoring engine shared across requests
	engine *fieldsimilarity.FieldSimilarity

	// Number of workers for bulk scoring requests
	bulkWorkers int

	// Logger instance
	logger l.Logger
)

// ScoreRequest carries the matcher configuration and one inline document.
type ScoreRequest struct {
	Matchers []map[string]interface{} `json:"matchers"`
	Document map[string]interface{}   `json:"document"`
}

// FieldScoreResponse is the per-field breakdown of a score response.
type FieldScoreResponse struct {
	Field   string  `json:"field"`
	Matcher string  `json:"matcher"`
	Raw     float64 `json:"raw"`
	Score   float64 `json:"score"`
}

// ScoreResponse represents a document scoring response.
type ScoreResponse struct {
	Score          float64              `json:"score"`
	Fields         []FieldScoreResponse `json:"fields"`
	ProcessingTime string               `json:"processing_time,omitempty"`
}

// BulkLineResponse is the outcome for one document line in a bulk request.
type BulkLineResponse struct {
	Line  int     `json:"line"`
	Score float64 `json:"score"`
	Error string  `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	workers := flag.Int("bulk-workers", DefaultBulkWorkers, "Workers per bulk scoring request")
	warmUp := flag.Bool("warm-up", true, "Warm up all matchers on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	bulkWorkers = *workers

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting field similarity HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"bulk_workers", bulkWorkers,
	)

	// Initialize the scoring engine
	opts := []fieldsimilarity.Option{
		fieldsimilarity.WithLogger(logger),
		fieldsimilarity.WithOptimizedNormalizer(),
		fieldsimilarity.WithWarmUp(*warmUp),
	}
	engine, err = fieldsimilarity.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize scoring engine", "error", err)
		os.Exit(1)
	}

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// createLogger builds the process logger, writing to the given file or stdout.
func createLogger(logFile string) (l.Logger, error) {
	output := os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		output = f
	}
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  logFile != "",
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "FieldSimilarityServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/matchers":
		handleMatchers(ctx)
	case "/score":
		handleScore(ctx)
	case "/bulk":
		handleBulk(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMatchers lists the supported matcher names
func handleMatchers(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"matchers": fieldsimilarity.Matchers(),
	})
}

// handleScore scores one inline document against the supplied matchers
func handleScore(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	startTime := time.Now()

	var req ScoreRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	params := map[string]interface{}{"matchers": req.Matchers}
	result, err := engine.EvaluateParams(ctx, params, fieldsimilarity.DocumentLookup(req.Document))
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	fields := make([]FieldScoreResponse, 0, len(result.Fields))
	for _, f := range result.Fields {
		fields = append(fields, FieldScoreResponse{
			Field:   f.FieldName,
			Matcher: f.MatcherName,
			Raw:     f.Raw,
			Score:   f.Score,
		})
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, ScoreResponse{
		Score:          result.Score,
		Fields:         fields,
		ProcessingTime: time.Since(startTime).String(),
	})
}

// handleBulk scores a stream of documents. The first NDJSON line carries
// the matcher configuration ({"matchers": [...]}), every following line is
// one document.
func handleBulk(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	body := ctx.PostBody()
	header, documents, found := bytes.Cut(body, []byte("\n"))
	if !found {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Bulk body needs a matcher configuration line followed by document lines")
		return
	}

	var params map[string]interface{}
	if err := json.Unmarshal(header, &params); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, fmt.Sprintf("Invalid matcher configuration line: %v", err))
		return
	}
	specs, err := fieldsimilarity.ParseFieldMatchSpecs(params)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	bulk := engine.NewBulkScorer(bulkWorkers)
	results, err := bulk.ScoreStream(ctx, specs, bytes.NewReader(documents))
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	lines := make([]BulkLineResponse, 0, len(results))
	for _, r := range results {
		line := BulkLineResponse{Line: r.Line, Score: r.Score}
		if r.Err != nil {
			line.Error = r.Err.Error()
		}
		lines = append(lines, line)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"results": lines,
	})
}

func writeJSONResponse(ctx *fasthttp.RequestCtx, response interface{}) {
	data, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Failed to encode response")
		return
	}
	ctx.SetBody(data)
}

func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	data, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetBodyString(`{"error": "internal error"}`)
		return
	}
	ctx.SetBody(data)
}
