/*
Package wellspring is a multi-agent wellness assistant core. It bundles a
meal planner, a virtual physician, and a mental wellness companion behind a
single Assistant facade, each agent expressed as a small workflow graph over
a shared state bag.

The architecture is hexagonal: pkg/domain holds the pure models, pkg/ports
the collaborator interfaces (model client, conversation store, web search),
and the adapters plug in OpenAI-compatible APIs, file/Redis/memory stores,
and DuckDuckGo search. Agents never talk to concrete backends.

Model output is treated as untrusted: every structured response goes through
pkg/parse, which extracts the first JSON object from arbitrary prose and
falls back to a schema-conforming default when nothing parses. A degraded
model never crashes a flow; the physician fallback in particular always
recommends seeing a doctor.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/serenelab/wellspring"
	)

	func main() {
		cfg := wellspring.DefaultConfig()

		assistant, err := wellspring.New(cfg)
		if err != nil {
			log.Fatal(err)
		}

		reply, err := assistant.Chat(context.Background(), "thread-1", "I slept badly.")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(reply)
	}
*/
package wellspring
