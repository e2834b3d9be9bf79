package services

import (
	"go.uber.org/zap"

	"github.com/motorfleet/cars-backend/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}
