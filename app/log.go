package app

import (
	"github.com/kaspanet/blockminer/infrastructure/logger"
)

var log = logger.RegisterSubSystem("MINR")
