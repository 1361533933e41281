package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/internal/taskhub/store"
)

var (
	flagTaskCategory    string
	flagTaskDescription string
	flagTaskDue         string
	flagTaskPriority    string
	flagTaskTags        []string

	flagFilterCategory  string
	flagFilterTag       string
	flagFilterPriority  string
	flagFilterCompleted string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		task := domain.Task{
			OwnerID:     user.ID,
			Name:        args[0],
			Description: flagTaskDescription,
			Category:    flagTaskCategory,
			Tags:        flagTaskTags,
		}

		if flagTaskDue != "" {
			due, err := parseDue(flagTaskDue)
			if err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
				return
			}
			task.DueDate = &due
		}
		if flagTaskPriority != "" {
			p, err := service.ParsePriority(flagTaskPriority)
			if err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
				return
			}
			task.Priority = p
		}

		created, err := orch.Tasks.Create(ctx, task)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Created task #%d: %s", created.ID, created.Name)))
	},
}

var taskListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List the acting account's tasks with optional category, tag, priority and completion filters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		var filter store.TaskFilter
		if flagFilterCategory != "" {
			filter.Category = &flagFilterCategory
		}
		if flagFilterTag != "" {
			filter.Tag = &flagFilterTag
		}
		if flagFilterPriority != "" {
			p, err := service.ParsePriority(flagFilterPriority)
			if err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
				return
			}
			filter.Priority = &p
		}
		if flagFilterCompleted != "" {
			completed, err := strconv.ParseBool(flagFilterCompleted)
			if err != nil {
				fmt.Println(errorStyle.Render("Error: --completed must be true or false"))
				return
			}
			filter.Completed = &completed
		}

		tasks, err := orch.Tasks.List(ctx, user.ID, filter)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'taskhub task add \"task name\" --user <username>' to create one.")
			return
		}

		fmt.Printf("%-4s %-40s %-14s %-8s %-11s %s\n", "ID", "NAME", "CATEGORY", "PRIORITY", "DUE", "TAGS")
		fmt.Println(strings.Repeat("-", 90))
		for _, task := range tasks {
			name := task.Name
			if len(name) > 38 {
				name = name[:35] + "..."
			}
			if task.Completed {
				name = doneStyle.Render(name)
			}

			category := renderLabel(task.Category, lookupColor(user.Categories, task.Category))

			due := ""
			if task.DueDate != nil {
				due = task.DueDate.Format("2006-01-02")
			}

			rendered := make([]string, 0, len(task.Tags))
			for _, tag := range task.Tags {
				rendered = append(rendered, renderLabel(tag, lookupTagColor(user.Tags, tag)))
			}

			fmt.Printf("%-4d %-40s %-14s %-8s %-11s %s\n",
				task.ID,
				name,
				category,
				priorityName(task.Priority),
				due,
				strings.Join(rendered, ","))
		}
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: invalid task ID '%s'", args[0])))
			return
		}

		task, err := orch.Tasks.Complete(ctx, user.ID, taskID)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Marked task #%d as done: %s", task.ID, task.Name)))
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long:  "Edit a task. Only the flags you pass are changed.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: invalid task ID '%s'", args[0])))
			return
		}

		var patch service.TaskPatch
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			patch.Name = &name
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &flagTaskDescription
		}
		if cmd.Flags().Changed("category") {
			patch.Category = &flagTaskCategory
		}
		if cmd.Flags().Changed("due") {
			due, err := parseDue(flagTaskDue)
			if err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
				return
			}
			patch.DueDate = &due
		}
		if cmd.Flags().Changed("priority") {
			p, err := service.ParsePriority(flagTaskPriority)
			if err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
				return
			}
			patch.Priority = &p
		}
		if cmd.Flags().Changed("tags") {
			patch.Tags = flagTaskTags
		}

		task, err := orch.Tasks.Update(ctx, user.ID, taskID, patch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Updated task #%d: %s", task.ID, task.Name)))
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"remove"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		taskID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: invalid task ID '%s'", args[0])))
			return
		}

		if err := orch.Tasks.Delete(ctx, user.ID, taskID); err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Deleted task #%d", taskID)))
	},
}

// parseDue accepts a date or an RFC 3339 timestamp.
func parseDue(s string) (time.Time, error) {
	if due, err := time.Parse("2006-01-02", s); err == nil {
		return due, nil
	}
	if due, err := time.Parse(time.RFC3339, s); err == nil {
		return due, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q, use YYYY-MM-DD or RFC 3339", s)
}

func priorityName(p int) string {
	names := []string{"", "low", "med", "high"}
	if p >= 0 && p < len(names) {
		return names[p]
	}
	return strconv.Itoa(p)
}

func lookupColor(categories []domain.Category, name string) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Color
		}
	}
	return ""
}

func lookupTagColor(tags []domain.Tag, name string) string {
	for _, t := range tags {
		if t.Name == name {
			return t.Color
		}
	}
	return ""
}

func init() {
	taskAddCmd.Flags().StringVarP(&flagTaskCategory, "category", "c", "", "Task category (defaults to General)")
	taskAddCmd.Flags().StringVarP(&flagTaskDescription, "description", "d", "", "Task description")
	taskAddCmd.Flags().StringVar(&flagTaskDue, "due", "", "Due date (YYYY-MM-DD or RFC 3339)")
	taskAddCmd.Flags().StringVarP(&flagTaskPriority, "priority", "p", "", "Priority: 0-3 or none/low/medium/high")
	taskAddCmd.Flags().StringSliceVarP(&flagTaskTags, "tags", "t", nil, "Comma-separated tag names")

	taskEditCmd.Flags().String("name", "", "New task name")
	taskEditCmd.Flags().StringVarP(&flagTaskDescription, "description", "d", "", "New description")
	taskEditCmd.Flags().StringVarP(&flagTaskCategory, "category", "c", "", "New category")
	taskEditCmd.Flags().StringVar(&flagTaskDue, "due", "", "New due date (YYYY-MM-DD or RFC 3339)")
	taskEditCmd.Flags().StringVarP(&flagTaskPriority, "priority", "p", "", "New priority: 0-3 or none/low/medium/high")
	taskEditCmd.Flags().StringSliceVarP(&flagTaskTags, "tags", "t", nil, "Replacement tag list")

	taskListCmd.Flags().StringVarP(&flagFilterCategory, "category", "c", "", "Filter by category")
	taskListCmd.Flags().StringVarP(&flagFilterTag, "tag", "t", "", "Filter by tag")
	taskListCmd.Flags().StringVarP(&flagFilterPriority, "priority", "p", "", "Filter by priority")
	taskListCmd.Flags().StringVar(&flagFilterCompleted, "completed", "", "Filter by completion: true or false")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRemoveCmd)
}
