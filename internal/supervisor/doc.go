// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package supervisor runs Filmorate's long-lived components under a suture v4
supervision tree.

	filmorate (root)
	├── storage-layer
	│   └── storage-monitor   (relational backends only)
	└── api-layer
	    └── http-server

Supervisor events are logged through sutureslog, fed by the zerolog slog
adapter from internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Canceling ctx stops the tree; services get TreeConfig.ShutdownTimeout to
return.
*/
package supervisor
