// Package maze turns a repeating category pattern into a binary maze tilemap.
//
// Pipeline:
//   - GenerateColormap tiles a Pattern into a grid of categories
//   - ExtractRegions flood-fills same-category walls and collects interior rooms
//   - CarvePaths grows a randomized Prim spanning tree, opening walls between rooms
//   - Compose flattens walls, rooms and openings into 1 (wall) / 0 (open) tiles
//   - WidenWith optionally doubles the tile granularity
//
// Generate runs the whole chain through a Context. All stages are synchronous and
// the only randomness comes from the RandomSource passed in.
package maze
