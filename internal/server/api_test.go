//go:build integration

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/config"
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	authcommands "github.com/eskrenkovic/table-scheduler/internal/modules/auth/commands"
	tablecommands "github.com/eskrenkovic/table-scheduler/internal/modules/table/commands"
	tabledomain "github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/tests"
	"github.com/eskrenkovic/table-scheduler/internal/server"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type apiFixture struct {
	client  *http.Client
	baseURL string
}

var fixture apiFixture

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgres, err := tests.NewPostgresFixture(ctx, "../../db/migrations")
	if err != nil {
		log.Fatal(err)
	}

	port, err := freePort()
	if err != nil {
		log.Fatal(err)
	}

	conf := config.Config{
		Logger:         zap.NewNop(),
		Port:           port,
		DatabaseURL:    postgres.DSN,
		MigrationsPath: "../../db/migrations",
		Auth: config.AuthConfiguration{
			JWTSecret:           []byte("integration-tests-signing-key-0123456789"),
			AccessTokenTTL:      time.Minute,
			RefreshTokenTTL:     time.Hour,
			PasswordHashCost:    bcrypt.MinCost,
			PasswordHashWorkers: 2,
		},
	}

	srv, err := server.NewHTTPServer(conf)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Println(err)
		}
	}()

	fixture = apiFixture{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: fmt.Sprintf("http://localhost:%d", port),
	}

	if err := waitForServer(fixture.baseURL); err != nil {
		log.Fatal(err)
	}

	code := m.Run()

	if err := srv.Stop(); err != nil {
		log.Println(err)
	}

	if err := postgres.Stop(ctx); err != nil {
		log.Println(err)
	}

	os.Exit(code)
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

func waitForServer(baseURL string) error {
	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := http.Get(baseURL + "/users/me")
		if err == nil {
			_ = resp.Body.Close()
			return nil
		}

		if time.Now().After(deadline) {
			return err
		}

		time.Sleep(100 * time.Millisecond)
	}
}

func sendRequest[TResp any](t *testing.T, method string, path string, token string, body any) (TResp, int) {
	t.Helper()

	var resp TResp

	var payload io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, fixture.baseURL+path, payload)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := fixture.client.Do(req)
	require.NoError(t, err)

	defer func() {
		_ = httpResp.Body.Close()
	}()

	responsePayload, err := io.ReadAll(httpResp.Body)
	require.NoError(t, err)

	if len(responsePayload) > 0 && httpResp.StatusCode < http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(responsePayload, &resp))
	}

	return resp, httpResp.StatusCode
}

func registerAndLogin(t *testing.T) auth.TokenPair {
	t.Helper()

	name := "user" + uuid.NewString()[:8]
	password := uuid.NewString()

	_, status := sendRequest[authcommands.RegisterResponse](t, http.MethodPost, "/auth/registrations", "", authcommands.RegisterCommand{
		Username: name,
		Email:    name + "@example.com",
		Password: password,
	})
	require.Equal(t, http.StatusCreated, status)

	pair, status := sendRequest[auth.TokenPair](t, http.MethodPost, "/auth/login", "", authcommands.LoginCommand{
		Email:    name + "@example.com",
		Password: password,
	})
	require.Equal(t, http.StatusOK, status)

	return pair
}

func Test_API_Refresh_Token_Is_Single_Use_And_Revoked_By_Logout(t *testing.T) {
	// Arrange
	pair := registerAndLogin(t)

	// Act & Assert
	refreshed, status := sendRequest[auth.TokenPair](t, http.MethodPost, "/auth/refresh", "", authcommands.RefreshCommand{
		RefreshToken: pair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEqual(t, pair.RefreshToken, refreshed.RefreshToken)

	_, status = sendRequest[auth.TokenPair](t, http.MethodPost, "/auth/refresh", "", authcommands.RefreshCommand{
		RefreshToken: pair.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, status)

	_, status = sendRequest[any](t, http.MethodPost, "/auth/logout", refreshed.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, status)

	_, status = sendRequest[auth.TokenPair](t, http.MethodPost, "/auth/refresh", "", authcommands.RefreshCommand{
		RefreshToken: refreshed.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, status)
}

func Test_API_Table_Request_Flow(t *testing.T) {
	// Arrange
	gm := registerAndLogin(t)
	player := registerAndLogin(t)

	created, status := sendRequest[tablecommands.CreateTableResponse](t, http.MethodPost, "/tables", gm.AccessToken, tablecommands.CreateTableCommand{
		Title:        "Masks of Nyarlathotep",
		PlayerSlots:  5,
		GameSystemID: uuid.New(),
	})
	require.Equal(t, http.StatusCreated, status)

	requestsPath := fmt.Sprintf("/tables/%s/requests", created.TableID)

	// Act & Assert
	request, status := sendRequest[tablecommands.CreateTableRequestResponse](t, http.MethodPost, requestsPath, player.AccessToken, struct{}{})
	require.Equal(t, http.StatusCreated, status)

	_, status = sendRequest[any](t, http.MethodPost, requestsPath, player.AccessToken, struct{}{})
	require.Equal(t, http.StatusConflict, status)

	approvePath := fmt.Sprintf("/table-requests/%s/actions/approve", request.TableRequestID)

	_, status = sendRequest[any](t, http.MethodPut, approvePath, player.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, status)

	approved, status := sendRequest[tabledomain.TableRequest](t, http.MethodPut, approvePath, gm.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, tabledomain.TableRequestStatusApproved, approved.Status)

	_, status = sendRequest[any](t, http.MethodPut, approvePath, gm.AccessToken, nil)
	require.Equal(t, http.StatusConflict, status)

	_, status = sendRequest[any](t, http.MethodGet, "/tables/not-a-uuid", gm.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, status)
}
