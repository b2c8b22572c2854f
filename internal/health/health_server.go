/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package health exposes the standard gRPC health checking service so that
// orchestrators can probe the process.
package health

import (
	"context"
	"fmt"
	"net"

	"yatube/internal/nlog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported next to the overall ("") status.
const ServiceName = "yatube"

type HealthServer struct {
	grpcServer *grpc.Server
	status     *health.Server
	logger     nlog.Logger
}

// NewHealthServer starts out NOT_SERVING until SetServing(true).
func NewHealthServer(logger nlog.Logger) *HealthServer {
	grpcServer := grpc.NewServer()
	status := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, status)

	h := &HealthServer{grpcServer: grpcServer, status: status, logger: logger}
	h.SetServing(false)
	return h
}

func (h *HealthServer) Logf(format string, v ...any) {
	h.logger.Logf(format, v...)
}

func (h *HealthServer) SetServing(serving bool) {
	state := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		state = healthpb.HealthCheckResponse_SERVING
	}
	h.status.SetServingStatus("", state)
	h.status.SetServingStatus(ServiceName, state)
	h.Logf("Health status is now %s", state)
}

// Serve blocks on lis until Stop.
func (h *HealthServer) Serve(lis net.Listener) error {
	h.Logf("Health server listening on %s", lis.Addr())
	return h.grpcServer.Serve(lis)
}

// Run serves on port until ctx is cancelled, then reports NOT_SERVING and
// stops.
func (h *HealthServer) Run(ctx context.Context, port uint16) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		h.Stop()
	}()
	return h.Serve(lis)
}

func (h *HealthServer) Stop() {
	h.SetServing(false)
	h.status.Shutdown()
	h.grpcServer.GracefulStop()
}
