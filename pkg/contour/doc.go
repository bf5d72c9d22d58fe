// Package contour turns a grid of binary samples into a polygon mesh using a
// feature-preserving variant of marching squares.
//
// A Grid owns an N×N block of samples. Stencils overwrite sample states and
// record where their boundary crosses the edges between samples, together
// with the boundary normal when the shape has one. Triangulate rebuilds the
// grid's mesh from scratch, reconstructing sharp corners where two crossing
// normals diverge enough, and stitches one extra column and row of cells
// against up to three neighbouring grids so that tiled grids share identical
// border vertices.
package contour
