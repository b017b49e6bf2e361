package app

import (
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/core/server"
)

// Config aggregates the settings of every component, all read from the environment.
type Config struct {
	Logger logger.Config
	Router router.Config
	Server server.Config
}
