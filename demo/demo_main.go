package main

import (
	"math"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/uniformbuf"
)

// Field order matches the packed layout CreateDynamic produces for the
// inputs below: vec4, vec3 paired with the float, then the vec2s.
const shaderCode = `
struct Params {
    color: vec4<f32>,
    tint: vec3<f32>,
    pulse: f32,
    offset: vec2<f32>,
    scale: vec2<f32>,
};

@group(0) @binding(0) var<uniform> params: Params;

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(-0.8, -0.8),
        vec2<f32>(0.8, -0.8),
        vec2<f32>(0.0, 0.8),
    );
    let p = pos[idx] * params.scale + params.offset;
    return vec4<f32>(p, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    let c = params.color.rgb * params.tint * params.pulse;
    return vec4<f32>(c, params.color.a);
}
`

func main() {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(800, 600, "uniformbuf demo", nil, nil)
	if err != nil {
		panic(err)
	}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       800,
		Height:      600,
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	pipeline := createPipeline(device, surfaceConfig.Format)
	defer pipeline.Release()

	// The uniform values stay caller-owned; the dynamic buffer reads
	// them on each refresh.
	color := mgl32.Vec4{1.0, 0.5, 0.2, 1.0}
	tint := mgl32.Vec3{1, 1, 1}
	pulse := float32(1)
	offset := mgl32.Vec2{0, 0}
	scale := mgl32.Vec2{1, 1}

	inputs := []*uniformbuf.Input{
		uniformbuf.Vec4Input(&color),
		uniformbuf.Vec3Input(&tint),
		uniformbuf.FloatInput(&pulse),
		uniformbuf.Vec2Input(&offset),
		uniformbuf.Vec2Input(&scale),
	}

	backend := uniformbuf.NewWgpuBackend(device)
	manager := uniformbuf.NewManager(backend, uniformbuf.NewDefaultLogger(false))

	params, err := manager.CreateDynamic(inputs)
	if err != nil {
		panic(err)
	}
	if params == nil {
		panic("demo: expected a dynamic uniform buffer")
	}
	defer manager.Destroy(params)

	manager.Bind(params, 0)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	defer bindGroupLayout.Release()
	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  bindGroupLayout,
		Entries: backend.BindGroupEntries(),
	})
	if err != nil {
		panic(err)
	}
	defer bindGroup.Release()

	start := glfw.GetTime()
	for !win.ShouldClose() {
		glfw.PollEvents()

		t := glfw.GetTime() - start
		pulse = 0.75 + 0.25*float32(math.Sin(t*2))
		offset = mgl32.Vec2{
			0.2 * float32(math.Cos(t)),
			0.2 * float32(math.Sin(t)),
		}
		tint = mgl32.Vec3{1, 0.5 + 0.5*float32(math.Sin(t*0.7)), 1}

		manager.RefreshDynamic(params, inputs)
		manager.Bind(params, 0) // uploads the dirty mirror

		renderFrame(surface, device, queue, pipeline, bindGroup)
	}
}

func createPipeline(device *wgpu.Device, format wgpu.TextureFormat) *wgpu.RenderPipeline {
	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "demo",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		panic(err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		panic(err)
	}
	return pipeline
}

func renderFrame(surface *wgpu.Surface, device *wgpu.Device, queue *wgpu.Queue, pipeline *wgpu.RenderPipeline, bindGroup *wgpu.BindGroup) {
	nextTexture, err := surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.05, G: 0.05, B: 0.08, A: 1.0},
			},
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(pipeline)
	renderPass.SetBindGroup(0, bindGroup, nil)
	renderPass.Draw(3, 1, 0, 0)

	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	queue.Submit(cmdBuffer)
	surface.Present()
}
