package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/commerce/internal/config"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func memoryConfig() *config.Config {
	return &config.Config{
		Address:       "localhost:0",
		Storage:       config.StorageMemory,
		LogLvl:        "info",
		Timezone:      "Asia/Seoul",
		SweepInterval: time.Hour,
		SweepWorkers:  2,
		JWTSecret:     "test-secret",
		BcryptCost:    4,
	}
}

func (s *ApplicationSuite) TestBuild_MemoryStorage() {
	s.Require().NoError(s.app.build(context.Background(), memoryConfig()))

	s.Nil(s.app.pool)
	s.NotNil(s.app.repo)
	s.NotNil(s.app.srv)
	s.NotNil(s.app.api)
	s.NotNil(s.app.sweeper)
}

func (s *ApplicationSuite) TestBuild_BadDatabase() {
	cfg := memoryConfig()
	cfg.Storage = config.StoragePostgres
	cfg.Database = "://not-a-dsn"

	err := s.app.build(context.Background(), cfg)

	s.Require().Error(err)
	s.Contains(err.Error(), "can't build pgx pool")
}

func (s *ApplicationSuite) TestRouter_RegisterThenReadOwnBalance() {
	s.Require().NoError(s.app.build(context.Background(), memoryConfig()))
	srv := httptest.NewServer(s.app.router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/user/register", "application/json",
		strings.NewReader(`{"login":"dave","name":"Dave","password":"secret123"}`))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	token := resp.Header.Get("Authorization")
	s.Require().NotEmpty(token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/user/balance", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", token)
	resp, err = http.DefaultClient.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/balances/1")
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}
