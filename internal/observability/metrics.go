// Package observability holds the Prometheus collectors shared by both
// services. HTTP-level metrics come from the fiberprometheus middleware; the
// collectors here cover concerns it cannot see.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastetrip_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// OrdersReceived counts accepted orders on the menu service.
	OrdersReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tastetrip_orders_received_total",
		Help: "Total number of orders accepted by the order intake",
	})

	// PostsCreated counts posts created on the blog service.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tastetrip_posts_created_total",
		Help: "Total number of blog posts created",
	})

	// SearchQueries counts blog search requests by outcome.
	SearchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tastetrip_search_queries_total",
		Help: "Total number of blog search queries by outcome",
	}, []string{"outcome"})
)
