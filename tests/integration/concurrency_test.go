package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	httpHandler "ledger-service/internal/adapter/http/handler"
	redisStore "ledger-service/internal/adapter/storage/redis"
	"ledger-service/internal/core/domain"
	"ledger-service/internal/keylock"
	"ledger-service/internal/service"
	"ledger-service/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ConcurrentCreditsLoseNothing(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	id := uuid.New()
	app.repo.seed(&domain.Account{ID: id, Name: "petr", Balance: 1000, Hold: 0, Active: true})

	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, _ := app.post(t, "/api/add", amountBody(id, 1))
			assert.Equal(t, 200, code)
		}()
	}
	wg.Wait()

	code, env := app.post(t, "/api/status", statusBody(id))
	require.Equal(t, 200, code)
	assert.Equal(t, float64(1000+workers), env.Addition["balance"])
}

func TestIntegration_ConcurrentMixedOperations(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	id := uuid.New()
	app.repo.seed(&domain.Account{ID: id, Name: "petr", Balance: 1000, Hold: 0, Active: true})

	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			code, _ := app.post(t, "/api/add", amountBody(id, 2))
			assert.Equal(t, 200, code)
		}()
		go func() {
			defer wg.Done()
			code, _ := app.post(t, "/api/subtract", amountBody(id, 1))
			assert.Equal(t, 200, code)
		}()
	}
	wg.Wait()

	code, env := app.post(t, "/api/status", statusBody(id))
	require.Equal(t, 200, code)
	assert.Equal(t, float64(1000+2*rounds), env.Addition["balance"])
	assert.Equal(t, float64(rounds), env.Addition["hold"])
}

func TestIntegration_ConcurrentOperationsOnDistinctAccounts(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	ids := make([]uuid.UUID, 4)
	for i := range ids {
		ids[i] = uuid.New()
		app.repo.seed(&domain.Account{ID: ids[i], Name: fmt.Sprintf("acct-%d", i), Balance: 100, Hold: 0, Active: true})
	}

	const perAccount = 25
	var wg sync.WaitGroup
	for _, id := range ids {
		for i := 0; i < perAccount; i++ {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				code, _ := app.post(t, "/api/add", amountBody(id, 1))
				assert.Equal(t, 200, code)
			}(id)
		}
	}
	wg.Wait()

	for _, id := range ids {
		code, env := app.post(t, "/api/status", statusBody(id))
		require.Equal(t, 200, code)
		assert.Equal(t, float64(100+perAccount), env.Addition["balance"])
	}
}

func TestIntegration_RateLimitHeadersPresent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := newInMemoryAccountRepo()
	log := logger.New("error", false)
	ledgerSvc := service.NewLedgerService(repo, keylock.NewRegistry(), log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		RateLimitStore: redisStore.NewRateLimitStore(client),
		Logger:         log,
	})
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/ping", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Remaining"))
}
