// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime provides the in-process change-notification hub behind
the live event feed.

Handlers call Notify(eventID) after any availability or response write;
the SSE endpoint subscribes and relays a refetch hint to connected
clients. The channel carries no payload and no ordering guarantee -
consumers always refetch the full state, which the heatmap aggregator
recomputes totally and idempotently.

	ch, cancel := hub.Subscribe(eventID)
	defer cancel()
	for range ch {
		// refetch and recompute
	}
*/
package realtime
