package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskNormalize(t *testing.T) {
	task := Task{Name: "  buy milk  ", Description: " two litres "}
	task.Normalize()

	require.Equal(t, "buy milk", task.Name)
	require.Equal(t, "two litres", task.Description)
	require.Equal(t, DefaultCategory.Name, task.Category)
	require.NotNil(t, task.Parameters)
	require.NotNil(t, task.Tags)

	t.Run("explicit category kept", func(t *testing.T) {
		task := Task{Name: "x", Category: " Work "}
		task.Normalize()
		require.Equal(t, "Work", task.Category)
	})
}

func TestTaskValidate(t *testing.T) {
	require.NoError(t, Task{Name: "x"}.Validate())
	require.NoError(t, Task{Name: "x", Priority: PriorityHigh}.Validate())

	require.ErrorIs(t, Task{}.Validate(), ErrEmptyName)
	require.ErrorIs(t, Task{Name: "x", Priority: 4}.Validate(), ErrInvalidPriority)
	require.ErrorIs(t, Task{Name: "x", Priority: -1}.Validate(), ErrInvalidPriority)
}

func TestValidateColor(t *testing.T) {
	for _, ok := range []string{"#000000", "#ffffff", "#5dafb0", "#ABCDEF"} {
		require.NoError(t, ValidateColor(ok), ok)
	}
	for _, bad := range []string{"", "red", "5dafb0", "#5dafb", "#5dafb00", "#5dafbg", "# dafb0"} {
		require.ErrorIs(t, ValidateColor(bad), ErrInvalidColor, bad)
	}
}

func TestCategoryValidate(t *testing.T) {
	require.NoError(t, Category{Name: "Work", Color: "#112233"}.Validate())
	require.ErrorIs(t, Category{Name: "  ", Color: "#112233"}.Validate(), ErrEmptyName)
	require.ErrorIs(t, Category{Name: "Work", Color: "blue"}.Validate(), ErrInvalidColor)
}
