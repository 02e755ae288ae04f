package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-todo-api/internal/config"
	"github.com/pribylovaa/go-todo-api/mocks"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:   "unit-secret",
		TokenHeader: "x-auth",
		BcryptCost:  bcrypt.MinCost,
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testCfg())
	svc.now = func() time.Time { return fixedNow }
	return svc, st
}
