package cmd

import (
	"folharh/cmd/client/cmd/branch"
	"folharh/cmd/client/cmd/employee"
	"folharh/cmd/client/cmd/user"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(provinceCmd)

	rootCmd.AddCommand(employee.EmployeeCmd)
	employee.EmployeeCmd.AddCommand(employee.ListCmd)

	rootCmd.AddCommand(branch.BranchCmd)
	branch.BranchCmd.AddCommand(branch.ListCmd)

	rootCmd.AddCommand(user.UserCmd)
	user.UserCmd.AddCommand(user.AddCmd)
	user.UserCmd.AddCommand(user.ListCmd)
}
