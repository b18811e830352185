/*
Package domain contains the document data model of the glyphgrid editor.

Every entity is an immutable value: operations take a value and return a new one,
leaving the input untouched. Unchanged children are shared with the previous value,
so an edit to one Node never copies the cells of its siblings.

# Key Entities

  - Document: canvas settings, color and glyph palettes, and an ordered list of Scenes.
  - Scene: an ordered stack of Nodes. Index 0 is the top of the z-order.
  - Node: a positionable layer holding Cells in node-local coordinates.
  - Cell: a glyph index and a color index at a coordinate.

Addressing an id that does not exist is never an error: the parent is returned unchanged.
*/
package domain
