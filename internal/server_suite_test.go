package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/2beens/blueprintfitness/internal/config"
	"github.com/2beens/blueprintfitness/internal/execution"

	"github.com/stretchr/testify/suite"
)

const serverHost = "127.0.0.1"

// ServerTestSuite runs the full service on real listeners and drives every
// scheme through the HTTP API.
type ServerTestSuite struct {
	suite.Suite

	server          *Server
	serverEndpoint  string
	metricsEndpoint string
	client          *http.Client
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupSuite() {
	port := freePort(s.T())
	metricsPort := freePort(s.T())

	var err error
	s.server, err = NewServer(NewServerParams{
		Config: &config.Config{
			Host:                  serverHost,
			Port:                  port,
			PrometheusMetricsHost: serverHost,
			PrometheusMetricsPort: strconv.Itoa(metricsPort),
			AllowedOrigins:        []string{"test"},
		},
		VersionInfo: "suite",
	})
	s.Require().NoError(err)

	s.server.Serve(serverHost, port)
	s.serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, port)
	s.metricsEndpoint = fmt.Sprintf("http://%s:%d/metrics", serverHost, metricsPort)
	s.client = &http.Client{Timeout: 5 * time.Second}

	s.Require().Eventually(func() bool {
		resp, err := s.client.Get(s.serverEndpoint + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 5*time.Second, 50*time.Millisecond)
}

func (s *ServerTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	s.client.CloseIdleConnections()
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", serverHost+":0")
	if err != nil {
		t.Fatalf("listen: %s", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func (s *ServerTestSuite) post(path string, body any) (int, []byte) {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest("POST", s.serverEndpoint+path, bytes.NewReader(raw))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "test")

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBody
}

func (s *ServerTestSuite) TestExecuteEveryScheme() {
	configurations := map[string]string{
		"standard":  `{"type":"standard","sets":{"min":4},"counts":{"min":6,"max":8}}`,
		"drop":      `{"type":"drop","startCounts":{"min":10},"drops":{"min":2}}`,
		"pyramidal": `{"type":"pyramidal","startCounts":{"min":12},"endCounts":{"min":6},"step":{"min":2},"mode":"ascending"}`,
		"myoReps":   `{"type":"myoReps","activationCounts":{"min":15},"miniSets":{"min":3},"miniSetCounts":{"min":5}}`,
		"restPause": `{"type":"restPause","counts":{"min":8},"miniSetCounts":{"min":3},"restPauseSeconds":{"min":15},"miniSets":{"min":2}}`,
		"mav":       `{"type":"mav","sets":{"min":3},"counts":{"min":10}}`,
	}

	for scheme, cfg := range configurations {
		s.Run(scheme, func() {
			status, body := s.post("/executions/"+scheme+"/init", map[string]any{
				"configuration":  json.RawMessage(cfg),
				"startingWeight": 80,
			})
			s.Require().Equal(http.StatusCreated, status, string(body))

			rawState := json.RawMessage(body)
			var progress execution.Progress
			s.Require().NoError(json.Unmarshal(rawState, &progress))
			s.Equal(1, progress.CurrentPhase)

			for steps := 0; !progress.IsCompleted; steps++ {
				s.Require().LessOrEqual(steps, progress.TotalPhases, "execution must complete")

				status, body = s.post("/executions/"+scheme+"/progress", map[string]any{
					"state":        rawState,
					"completedSet": progress.CurrentSetData,
				})
				s.Require().Equal(http.StatusOK, status, string(body))

				var resp struct {
					State json.RawMessage `json:"state"`
				}
				s.Require().NoError(json.Unmarshal(body, &resp))
				rawState = resp.State

				var next execution.Progress
				s.Require().NoError(json.Unmarshal(rawState, &next))
				if next.TotalPhases > 1 {
					s.Equal(progress.CurrentPhase+1, next.CurrentPhase)
				}
				progress = next
			}

			s.Nil(progress.NextSetData)
			s.Nil(progress.RestPeriodSeconds)

			status, _ = s.post("/executions/"+scheme+"/progress", map[string]any{
				"state":        rawState,
				"completedSet": progress.CurrentSetData,
			})
			s.Equal(http.StatusConflict, status)
		})
	}
}

func (s *ServerTestSuite) TestMetricsExposed() {
	status, _ := s.post("/configurations/preview", map[string]any{
		"configuration": json.RawMessage(`{"type":"mav","sets":{"min":3},"counts":{"min":10}}`),
	})
	s.Require().Equal(http.StatusOK, status)

	resp, err := s.client.Get(s.metricsEndpoint)
	s.Require().NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	s.Contains(string(body), `blueprint_main_configuration_previews{type="mav"}`)
	s.Contains(string(body), "go_goroutines")
}
