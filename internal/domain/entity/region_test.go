package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectValidate(t *testing.T) {
	require.NoError(t, Rect{X: 0, Y: 0, Width: 10, Height: 10}.Validate())
	require.ErrorIs(t, Rect{Width: 0, Height: 10}.Validate(), ErrInvalidRegion)
	require.ErrorIs(t, Rect{Width: 10, Height: -1}.Validate(), ErrInvalidRegion)
}

func TestParseRect(t *testing.T) {
	rect, err := ParseRect("10, 20, 300, 400")
	require.NoError(t, err)
	require.Equal(t, Rect{X: 10, Y: 20, Width: 300, Height: 400}, rect)

	_, err = ParseRect("10,20,300")
	require.ErrorIs(t, err, ErrInvalidRegion)

	_, err = ParseRect("a,b,c,d")
	require.ErrorIs(t, err, ErrInvalidRegion)

	_, err = ParseRect("10,20,0,400")
	require.ErrorIs(t, err, ErrInvalidRegion)
}

func TestDetectionOptionsWithDefaults(t *testing.T) {
	opts := DetectionOptions{}.WithDefaults()
	require.Equal(t, ThresholdAuto, opts.Mode)
	require.Equal(t, 5, opts.BlurKernelSize)
	require.Equal(t, 3, opts.OpenKernelSize)
	require.Greater(t, opts.MinRadiusPx, 0.0)

	// Заданные значения не перетираются.
	custom := DetectionOptions{Mode: ThresholdFixed, FixedThreshold: 128, MinRadiusPx: 1, OpenKernelSize: 2}.WithDefaults()
	require.Equal(t, ThresholdFixed, custom.Mode)
	require.InDelta(t, 128.0, custom.FixedThreshold, 1e-9)
	require.InDelta(t, 1.0, custom.MinRadiusPx, 1e-9)
	require.Equal(t, 2, custom.OpenKernelSize)
	require.Equal(t, 5, custom.BlurKernelSize)
}

func TestRegionLayoutValidate(t *testing.T) {
	layout := RegionLayout{
		Reference: Rect{Width: 10, Height: 10},
		Zones: []MeasureZone{
			{Rect: Rect{X: 10, Width: 10, Height: 10}},
		},
	}
	require.NoError(t, layout.Validate())

	layout.Zones[0].Rect.Height = 0
	require.ErrorIs(t, layout.Validate(), ErrInvalidRegion)
}
