/*
Package glyphgrid is a state engine for glyph-and-color cell editors.

A document holds scenes, a scene holds a stack of nodes and a node holds cells.
Every edit is an action reduced into a new immutable workspace state. Persistent
actions are recorded in a linear revision log that coalesces rapid edits of the
same kind and discards the redo future on new writes. Transient actions only move
the selection.

# Concept

The Editor wraps the reducer pipeline with session storage. Callers send
actions, tools turn pointer input into actions and renderers read the current
document through package compositor.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/glyphgrid"
		"github.com/aretw0/glyphgrid/pkg/action"
		"github.com/aretw0/glyphgrid/pkg/compositor"
	)

	func main() {
		ctx := context.Background()
		editor := glyphgrid.New()

		state, err := editor.Start(ctx, "sketch")
		if err != nil {
			log.Fatal(err)
		}

		state, err = editor.Dispatch(ctx, "sketch",
			action.SetCell{SceneID: state.CurrentSceneID, NodeID: state.CurrentNodeID, X: 1, Y: 1, Glyph: 7, Color: 2},
		)
		if err != nil {
			log.Fatal(err)
		}

		scene, _ := state.CurrentScene()
		fmt.Println(len(compositor.Composite(scene)))
	}
*/
package glyphgrid
