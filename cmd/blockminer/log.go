package main

import (
	"github.com/kaspanet/blockminer/infrastructure/logger"
	"github.com/kaspanet/blockminer/util/panics"
)

var (
	log   = logger.RegisterSubSystem("BMCL")
	spawn = panics.GoroutineWrapperFunc(log)
)
