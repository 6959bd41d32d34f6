package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/auth"
)

func memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage household members",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a member to the roster",
		RunE:  runMemberAdd,
	}
	add.Flags().String("name", "", "member name, used to log in")
	add.Flags().String("passcode", "", "login passcode (at least 8 characters)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("passcode")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the roster",
		RunE:  runMemberList,
	}

	cmd.AddCommand(add, list)
	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create an administrator",
		RunE:  runAdminAdd,
	}
	add.Flags().String("name", "", "administrator name")
	add.Flags().String("passcode", "", "login passcode (at least 8 characters)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("passcode")

	cmd.AddCommand(add)
	return cmd
}

func runMemberAdd(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	passcode, _ := cmd.Flags().GetString("passcode")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	member, err := auth.NewPasscodeAuthenticator(store, nil).RegisterMember(cmd.Context(), name, passcode)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added member %q (id %d)\n", member.Name, member.ID)
	return nil
}

func runMemberList(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	members, err := store.ListMembers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(members) == 0 {
		fmt.Fprintln(out, "No members yet. Use 'messctl member add' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tJOINED")
	for _, m := range members {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.Name, time.Unix(m.CreatedAt, 0).Format("2006-01-02"))
	}
	return w.Flush()
}

func runAdminAdd(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	passcode, _ := cmd.Flags().GetString("passcode")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	admin, err := auth.NewPasscodeAuthenticator(store, nil).RegisterAdmin(cmd.Context(), name, passcode)
	if err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added admin %q (id %d)\n", admin.Name, admin.ID)
	return nil
}
