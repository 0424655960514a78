package world

import "github.com/soypat/geometry/ms3"

// Fog is linear distance fog.
type Fog struct {
	Color uint32  `json:"color"`
	Near  float32 `json:"near"`
	Far   float32 `json:"far"`
}

// Ground is the textured floor plane.
type Ground struct {
	Size    float32 `json:"size"`
	Texture string  `json:"texture"`
	// TileSize is the world size one texture repeat covers.
	TileSize float32 `json:"tile_size"`
}

// Shapes controls the scattered primitives.
type Shapes struct {
	Boxes     int `json:"boxes"`
	Spheres   int `json:"spheres"`
	Cylinders int `json:"cylinders"`

	BoxSize        float32 `json:"box_size"`
	SphereRadius   float32 `json:"sphere_radius"`
	CylinderRadius float32 `json:"cylinder_radius"`
	CylinderHeight float32 `json:"cylinder_height"`
	Segments       int     `json:"segments"`

	// Spread is the half-size of the square the shapes are scattered over.
	Spread float32 `json:"spread"`
	Height float32 `json:"height"`
}

// Camera is the perspective camera and its orbit controls.
type Camera struct {
	FovDegrees float32 `json:"fov_degrees"`
	Near       float32 `json:"near"`
	Far        float32 `json:"far"`
	Position   ms3.Vec `json:"position"`
	Target     ms3.Vec `json:"target"`
	Damping    float32 `json:"damping"`
}

// Light is one scene light. Fields a light type has no use for are ignored.
type Light struct {
	Color        uint32  `json:"color"`
	Intensity    float32 `json:"intensity"`
	Position     ms3.Vec `json:"position"`
	Target       ms3.Vec `json:"target"`
	Distance     float32 `json:"distance"`
	CastsShadows bool    `json:"casts_shadows"`
	ShadowMap    uint32  `json:"shadow_map"`
	ShadowBias   float32 `json:"shadow_bias"`
	ShadowNear   float32 `json:"shadow_near"`
	ShadowFar    float32 `json:"shadow_far"`
}

// Config describes the static scene.
type Config struct {
	Background uint32    `json:"background"`
	Fog        Fog       `json:"fog"`
	Ground     Ground    `json:"ground"`
	Skybox     [6]string `json:"skybox"`
	Shapes     Shapes    `json:"shapes"`
	Camera     Camera    `json:"camera"`
	Ambient    Light     `json:"ambient"`
	Sun        Light     `json:"sun"`
	Point      Light     `json:"point"`
}

// DefaultConfig returns the stock scene.
func DefaultConfig() Config {
	return Config{
		Background: 0xD0C9B9,
		Fog:        Fog{Color: 0xD0C9B9, Near: 30, Far: 100},
		Ground:     Ground{Size: 200, Texture: "ground.png", TileSize: 40},
		Skybox: [6]string{
			"skybox/wall1.png",
			"skybox/wall2.png",
			"skybox/ceiling.png",
			"skybox/ground.png",
			"skybox/wall3.png",
			"skybox/wall4.png",
		},
		Shapes: Shapes{
			Boxes:          10,
			Spheres:        5,
			Cylinders:      5,
			BoxSize:        3,
			SphereRadius:   2,
			CylinderRadius: 2,
			CylinderHeight: 5,
			Segments:       32,
			Spread:         50,
			Height:         1.5,
		},
		Camera: Camera{
			FovDegrees: 75,
			Near:       0.1,
			Far:        100,
			Position:   ms3.Vec{Y: 20, Z: 40},
			Damping:    0.1,
		},
		Ambient: Light{Color: 0xDAFCD7, Intensity: 0.03},
		Sun: Light{
			Color:        0xFFFFFF,
			Intensity:    1,
			Position:     ms3.Vec{X: 30, Y: 30, Z: 30},
			CastsShadows: true,
			ShadowMap:    2048,
			ShadowBias:   -0.001,
			ShadowNear:   0.1,
			ShadowFar:    50,
		},
		Point: Light{
			Color:        0xFFFFFF,
			Intensity:    1,
			Position:     ms3.Vec{X: 30, Y: 20, Z: 30},
			Distance:     100,
			CastsShadows: true,
			ShadowMap:    1024,
		},
	}
}
