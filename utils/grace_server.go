package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 60 * time.Second
	shutdownGrace       = 30 * time.Second

	gracefulEnvKey = "FOLIO_GRACEFUL"
	// The inherited listener arrives as fd 3, right after stdin/stdout/stderr.
	gracefulListenerFd = 3
)

// gracefulServer wraps http.Server with zero-downtime restart: SIGUSR2
// forks a replacement that inherits the listening socket, SIGTERM drains
// in-flight requests before exit.
type gracefulServer struct {
	*http.Server

	listener     net.Listener
	inherited    bool
	signalChan   chan os.Signal
	shutdownChan chan struct{}
}

func newGracefulServer(addr string, handler http.Handler) *gracefulServer {
	return &gracefulServer{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		inherited:    os.Getenv(gracefulEnvKey) != "",
		signalChan:   make(chan os.Signal, 1),
		shutdownChan: make(chan struct{}),
	}
}

func (srv *gracefulServer) listenAndServe() error {
	addr := srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := srv.acquireListener(addr)
	if err != nil {
		return err
	}
	srv.listener = ln

	go srv.handleSignals()
	err = srv.Serve(srv.listener)
	// Serve returns as soon as the listener closes; wait for the drain.
	<-srv.shutdownChan
	return err
}

// acquireListener either adopts the socket passed down by the previous
// process or binds a fresh one.
func (srv *gracefulServer) acquireListener(addr string) (net.Listener, error) {
	if srv.inherited {
		file := os.NewFile(gracefulListenerFd, "")
		ln, err := net.FileListener(file)
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		return ln, nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

func (srv *gracefulServer) handleSignals() {
	signal.Notify(srv.signalChan, syscall.SIGTERM, syscall.SIGUSR2)

	for sig := range srv.signalChan {
		switch sig {
		case syscall.SIGTERM:
			srv.logf("received SIGTERM, draining HTTP server")
			srv.drain()
		case syscall.SIGUSR2:
			srv.logf("received SIGUSR2, handing socket to replacement process")
			pid, err := srv.spawnReplacement()
			if err != nil {
				srv.logf("replacement start failed: %v, continue serving", err)
				continue
			}
			srv.logf("replacement running, pid=%d, draining old server", pid)
			srv.drain()
		}
	}
}

func (srv *gracefulServer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		srv.logf("shutdown error: %v", err)
	}
	close(srv.shutdownChan)
}

// spawnReplacement forks the same binary with the listening socket as fd 3
// and the graceful marker in its environment.
func (srv *gracefulServer) spawnReplacement() (int, error) {
	tcpLn, ok := srv.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener is not *net.TCPListener")
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("listener file: %w", err)
	}

	env := make([]string, 0, len(os.Environ())+1)
	for _, e := range os.Environ() {
		if e != gracefulEnvKey+"=1" {
			env = append(env, e)
		}
	}
	env = append(env, gracefulEnvKey+"=1")

	attr := &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	}
	pid, err := syscall.ForkExec(os.Args[0], os.Args, attr)
	if err != nil {
		return 0, fmt.Errorf("forkexec: %w", err)
	}
	return pid, nil
}

func (srv *gracefulServer) logf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Infof(format, args...)
	}
}

// GraceServer serves HTTP with graceful shutdown and zero-downtime restart.
func GraceServer(addr string, handler http.Handler) error {
	return newGracefulServer(addr, handler).listenAndServe()
}
