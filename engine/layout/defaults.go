package layout

// Uniform field names used by the light-beam shader.
const (
	FieldModelMatrix      = "modelMatrix"
	FieldViewMatrix       = "viewMatrix"
	FieldProjectionMatrix = "projectionMatrix"
	FieldCameraPosition   = "cameraPosition"
	FieldCanvasSize       = "canvasSize"
	FieldOverallRadius    = "uOverallRadius"
	FieldConeRadius       = "uConeRadius"
	FieldLightLength      = "uLightLength"
	FieldTime             = "uTime"
	FieldLightStep        = "uLightStep"
	FieldLightSpeed       = "uLightSpeed"
	FieldLightIntensity   = "uLightIntensity"
)

// DefaultUniformFields returns the light-beam uniform declaration: three matrices, the camera
// position padded to 4, the canvas size, then the scalar controls and time.
func DefaultUniformFields() []UniformField {
	return []UniformField{
		{Name: FieldModelMatrix, Components: 16},
		{Name: FieldViewMatrix, Components: 16},
		{Name: FieldProjectionMatrix, Components: 16},
		{Name: FieldCameraPosition, Components: 4},
		{Name: FieldCanvasSize, Components: 2},
		{Name: FieldOverallRadius, Components: 1},
		{Name: FieldConeRadius, Components: 1},
		{Name: FieldLightLength, Components: 1},
		{Name: FieldTime, Components: 1},
		{Name: FieldLightStep, Components: 1},
		{Name: FieldLightSpeed, Components: 1},
		{Name: FieldLightIntensity, Components: 1},
	}
}

// DefaultControls returns the initial values of the tunable scalar controls.
func DefaultControls() map[string]float32 {
	return map[string]float32{
		FieldOverallRadius:  1,
		FieldConeRadius:     1,
		FieldLightLength:    1,
		FieldLightStep:      0.5,
		FieldLightSpeed:     1,
		FieldLightIntensity: 1,
	}
}
