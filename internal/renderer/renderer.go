package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"imageviewer/internal/diag"
)

// Vertex represents a vertex with position and texture coordinates
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
}

// ImageTexture holds the GPU resources of the displayed image
type ImageTexture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   int
	Height  int
}

// Renderer draws a single image over a solid background with WebGPU
type Renderer struct {
	device          *wgpu.Device
	queue           *wgpu.Queue
	surface         *wgpu.Surface
	adapter         *wgpu.Adapter
	swapChain       *wgpu.SwapChain
	swapChainFormat wgpu.TextureFormat
	pipeline        *wgpu.RenderPipeline
	sampler         *wgpu.Sampler
	bindGroupLayout *wgpu.BindGroupLayout
	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer

	image *ImageTexture

	width  uint32
	height uint32

	log *diag.Logger
}

// NewRenderer creates a new WebGPU renderer
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, queue *wgpu.Queue, surface *wgpu.Surface, width, height uint32, log *diag.Logger) (*Renderer, error) {
	r := &Renderer{
		adapter: adapter,
		device:  device,
		queue:   queue,
		surface: surface,
		width:   width,
		height:  height,
		log:     log,
	}

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}

	return r, nil
}

func (r *Renderer) init() error {
	r.swapChainFormat = r.surface.GetPreferredFormat(r.adapter)
	r.log.Debugf("surface format: %v", r.swapChainFormat)

	var err error
	r.swapChain, err = r.createSwapChain(r.width, r.height)
	if err != nil {
		return err
	}

	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "image_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: ImageShader},
	})
	if err != nil {
		return fmt.Errorf("shader creation failed: %w", err)
	}
	defer shader.Release()

	// Natural size, so nearest sampling keeps pixels exact
	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:   wgpu.AddressMode_ClampToEdge,
		AddressModeV:   wgpu.AddressMode_ClampToEdge,
		AddressModeW:   wgpu.AddressMode_ClampToEdge,
		MagFilter:      wgpu.FilterMode_Nearest,
		MinFilter:      wgpu.FilterMode_Nearest,
		MipmapFilter:   wgpu.MipmapFilterMode_Nearest,
		MaxAnisotrophy: 1,
	})
	if err != nil {
		return fmt.Errorf("sampler creation failed: %w", err)
	}

	r.bindGroupLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "image_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Vertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStage_Fragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingType_Filtering},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStage_Fragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleType_Float,
					ViewDimension: wgpu.TextureViewDimension_2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("bind group layout creation failed: %w", err)
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "image_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout creation failed: %w", err)
	}
	defer pipelineLayout.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "image_pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
				StepMode:    wgpu.VertexStepMode_Vertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormat_Float32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormat_Float32x2, Offset: 8, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline creation failed: %w", err)
	}

	// Unit quad (0-1 range), top-left first
	vertices := []Vertex{
		{Position: [2]float32{0, 0}, TexCoord: [2]float32{0, 0}},
		{Position: [2]float32{1, 0}, TexCoord: [2]float32{1, 0}},
		{Position: [2]float32{1, 1}, TexCoord: [2]float32{1, 1}},
		{Position: [2]float32{0, 1}, TexCoord: [2]float32{0, 1}},
	}
	r.vertexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "vertex_buffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return fmt.Errorf("vertex buffer creation failed: %w", err)
	}

	indices := []uint16{0, 1, 2, 0, 2, 3}
	r.indexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "index_buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsage_Index,
	})
	if err != nil {
		return fmt.Errorf("index buffer creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createSwapChain(width, height uint32) (*wgpu.SwapChain, error) {
	sc, err := r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
	if err != nil {
		return nil, fmt.Errorf("swap chain creation failed: %w", err)
	}
	return sc, nil
}

// SetImage uploads img, replacing the previous texture
func (r *Renderer) SetImage(img *image.NRGBA) error {
	if err := checkSize(img.Bounds()); err != nil {
		return err
	}

	tex, err := r.createImageTexture(img)
	if err != nil {
		return fmt.Errorf("texture upload failed: %w", err)
	}

	r.releaseImage()
	r.image = tex
	r.log.Debugf("uploaded image %dx%d", tex.Width, tex.Height)
	return nil
}

func (r *Renderer) createImageTexture(img *image.NRGBA) (*ImageTexture, error) {
	w := uint32(img.Bounds().Dx())
	h := uint32(img.Bounds().Dy())

	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "image_texture",
		Size: wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        wgpu.TextureFormat_RGBA8UnormSrgb,
		Usage:         wgpu.TextureUsage_TextureBinding | wgpu.TextureUsage_CopyDst,
	})
	if err != nil {
		return nil, err
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: texture, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspect_All},
		img.Pix,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: uint32(img.Stride), RowsPerImage: h},
		&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          wgpu.TextureFormat_RGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimension_2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspect_All,
	})
	if err != nil {
		texture.Release()
		return nil, err
	}

	return &ImageTexture{Texture: texture, View: view, Width: int(w), Height: int(h)}, nil
}

// Render clears to the background colour and draws the image with its
// top-left corner at pixel (x, y)
func (r *Renderer) Render(x, y float64) error {
	view, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: clearColor(Background, r.swapChainFormat),
		}},
	})

	if r.image != nil {
		p := place(x, y, r.image.Width, r.image.Height, r.width, r.height)
		uniformBuffer, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "placement_uniform",
			Contents: wgpu.ToBytes([]Placement{p}),
			Usage:    wgpu.BufferUsage_Uniform,
		})
		if err != nil {
			pass.End()
			return fmt.Errorf("uniform buffer creation failed: %w", err)
		}
		defer uniformBuffer.Release()

		bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "image_bind_group",
			Layout: r.bindGroupLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: uniformBuffer, Size: uint64(unsafe.Sizeof(Placement{}))},
				{Binding: 1, Sampler: r.sampler},
				{Binding: 2, TextureView: r.image.View},
			},
		})
		if err != nil {
			pass.End()
			return fmt.Errorf("bind group creation failed: %w", err)
		}
		defer bindGroup.Release()

		pass.SetPipeline(r.pipeline)
		pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormat_Uint16, 0, wgpu.WholeSize)
		pass.SetBindGroup(0, bindGroup, nil)
		pass.DrawIndexed(6, 1, 0, 0, 0)
	}

	pass.End()

	cmdBuffer, err := encoder.Finish(&wgpu.CommandBufferDescriptor{})
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.swapChain.Present()

	return nil
}

// Resize recreates the swap chain for a new framebuffer size
func (r *Renderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	r.width = width
	r.height = height

	if r.swapChain != nil {
		r.swapChain.Release()
		r.swapChain = nil
	}

	sc, err := r.createSwapChain(width, height)
	if err != nil {
		return err
	}
	r.swapChain = sc
	return nil
}

func (r *Renderer) releaseImage() {
	if r.image != nil {
		r.image.View.Release()
		r.image.Texture.Release()
		r.image = nil
	}
}

// Release frees all GPU resources
func (r *Renderer) Release() {
	r.releaseImage()

	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Release()
	}
	if r.bindGroupLayout != nil {
		r.bindGroupLayout.Release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	if r.swapChain != nil {
		r.swapChain.Release()
	}
}
