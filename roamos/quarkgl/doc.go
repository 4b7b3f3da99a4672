// Package quarkgl is the small software 3D renderer behind the room view.
//
// Pipeline (fixed):
//
//	Scene → Model/View/Projection → Near-plane clipping → Culling → Rasterization → Target.
//
// It draws flat-shaded triangle meshes into a caller-provided Target, lit by one
// ambient term and one directional light. A Renderer is created once and
// reused; the render path does not allocate after the depth buffer is sized.
package quarkgl
