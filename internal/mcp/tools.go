package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/zoom"
)

func (s *Server) describe(d platform.Display) DisplayInfo {
	factor := s.policy.ZoomFor(d)
	tier := "normal"
	if factor == s.policy.HiDPI {
		tier = "hidpi"
	}
	return DisplayInfo{
		ID:     d.ID,
		Name:   d.Name,
		Bounds: d.Bounds,
		Zoom:   float64(factor),
		Tier:   tier,
	}
}

func (s *Server) handleListDisplays(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.displays.Displays(ctx)
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("get displays: %w", err)
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		out.Displays = append(out.Displays, s.describe(d))
	}
	s.logger.Debug("mcp list_displays", "count", len(out.Displays))
	return nil, out, nil
}

func (s *Server) handleEvaluateZoom(ctx context.Context, _ *mcpsdk.CallToolRequest, args EvaluateZoomInput) (*mcpsdk.CallToolResult, EvaluateZoomOutput, error) {
	displays, err := s.displays.Displays(ctx)
	if err != nil {
		return nil, EvaluateZoomOutput{}, fmt.Errorf("get displays: %w", err)
	}

	d, ok := zoom.FindDisplay(args.X, args.Y, displays)
	if !ok {
		s.logger.Debug("mcp evaluate_zoom: no display", "x", args.X, "y", args.Y)
		return nil, EvaluateZoomOutput{Matched: false}, nil
	}

	info := s.describe(d)
	s.logger.Debug("mcp evaluate_zoom", "x", args.X, "y", args.Y, "display", d.ID, "zoom", info.Zoom)
	return nil, EvaluateZoomOutput{Matched: true, Display: &info, Zoom: info.Zoom}, nil
}
