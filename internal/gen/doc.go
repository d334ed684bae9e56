// Package gen renders LinkML schemas as Python modules of pydantic models.
//
// Rendering uses text/template. Classes are emitted in inheritance order,
// array classes are folded into NDArray annotations on the slots that use
// them, and every module ends with model_rebuild calls so forward
// references resolve.
package gen
