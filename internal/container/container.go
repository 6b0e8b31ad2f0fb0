package container

import (
	app "pore-bot/internal/application"
	"pore-bot/internal/domain/port"
)

type Container struct {
	UserService        *app.UserService
	MeasurementService *app.MeasurementService
}

func New(userRepo port.UserRepository, detector port.PoreDetector, knownDiameterMm, tolerancePx float64) *Container {
	userService := app.NewUserService(userRepo)
	measurementService := app.NewMeasurementService(userService, detector, knownDiameterMm, tolerancePx)

	return &Container{
		UserService:        userService,
		MeasurementService: measurementService,
	}
}
