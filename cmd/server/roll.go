package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var (
	serverAddr  string
	rollTimeout time.Duration
	rollEntity  string
	rollContext string
	rollReason  string
)

var rollCmd = &cobra.Command{
	Use:   "roll [notation]",
	Short: "Roll dice on a running server",
	Long: `Roll NdM(+K) through the gRPC DiceService and print the roll log as JSON.

  rpg-combat roll 1d20+5 --entity combat_1 --context combat_round_2`,
	Args: cobra.ExactArgs(1),
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	rollCmd.Flags().DurationVar(&rollTimeout, "timeout", 30*time.Second, "request timeout")
	rollCmd.Flags().StringVar(&rollEntity, "entity", "cli", "entity the roll is logged under")
	rollCmd.Flags().StringVar(&rollContext, "context", "manual", "roll log context")
	rollCmd.Flags().StringVar(&rollReason, "description", "", "description stored with the roll")
}

func runRoll(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), rollTimeout)
	defer cancel()

	resp, err := client.RollDice(ctx, &apiv1alpha1.RollDiceRequest{
		EntityId:            rollEntity,
		Context:             rollContext,
		Notation:            args[0],
		ModifierDescription: rollReason,
	})
	if err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	marshaler := protojson.MarshalOptions{
		Multiline:       true,
		Indent:          "  ",
		EmitUnpopulated: false,
	}
	data, err := marshaler.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// createDiceClient connects to the server's DiceService
func createDiceClient() (apiv1alpha1.DiceServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return apiv1alpha1.NewDiceServiceClient(conn), cleanup, nil
}
