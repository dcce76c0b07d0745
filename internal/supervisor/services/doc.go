// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package services provides suture.Service wrappers for dashboard components.

HTTP Server (HTTPServerService):
  - Wraps *http.Server, translating ListenAndServe into Serve
  - Graceful shutdown with a bounded drain timeout

Dataset Loader (DatasetLoadService):
  - Imports the clickstream CSV when the database has no sessions
  - One-shot: returns suture.ErrDoNotRestart once data is present
  - Retried with supervisor backoff when the load fails

Cache sweepers need no wrapper: *cache.Cache implements Serve and String
directly.
*/
package services
