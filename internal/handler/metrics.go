package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_studio_page_loads_total",
		Help: "Total number of workspace page loads by configuration outcome.",
	}, []string{"outcome"})
	userErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_studio_user_errors_total",
		Help: "Total number of error messages shown to the user, by kind.",
	}, []string{"kind"})
)
