/*
Package parley is an embeddable runtime for branching dialogue scripts. It
walks a compiled dialogue resource one printable line at a time, evaluating
conditions, executing mutations against host-supplied state, and filtering
player responses along the way.

A compiled resource is a flat map of lines keyed by unique ids, plus a
title table mapping human-readable entry points to keys. Lines come in five
kinds: dialogue (spoken text), response (a set of player options),
condition (a branch), mutation (a state side effect), and goto (a jump).
Conditions, gotos, and mutations are traversal machinery; only dialogue
and response lines ever reach the host.

# Concept

The runtime is a pull model. The host asks for the next line, renders it,
collects input if the line carries responses, and asks again with the
chosen line's next id. State lives on the host: any type implementing
ports.StateProvider can expose properties and methods to the script, and
pkg/state.Map is a ready-made map-backed provider.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/parleykit/parley"
		"github.com/parleykit/parley/pkg/adapters/file"
		"github.com/parleykit/parley/pkg/state"
	)

	func main() {
		rt, err := parley.New(
			parley.WithLoader(file.NewLoader("intro.yaml")),
			parley.WithStates(state.NewMap(map[string]any{"coins": 0})),
		)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		key := "start"
		for {
			line, err := rt.GetNextDialogueLine(ctx, key)
			if err != nil {
				log.Fatal(err)
			}
			if line == nil {
				break
			}
			fmt.Printf("%s: %s\n", line.Character, line.Dialogue)
			// Offer line.Responses to the player here; for a linear
			// script just follow the chain.
			key = line.NextID
		}
	}

Strict runtimes (the default) abort traversal when a script references a
property or method no provider exposes. Lenient runtimes substitute typed
defaults and remember writes, which suits previewing scripts without a
full host wired up.
*/
package parley
