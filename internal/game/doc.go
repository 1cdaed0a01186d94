// Package game implements the core blackjack rules engine.
//
// The main type is Game, which plays complete rounds between a set of
// players and the dealer: dealing from the shoe, running each player's
// turn through their Strategy, applying the dealer's fixed policy and
// settling bets against bankrolls.
//
// # Basic Usage
//
// Create players with strategies and play rounds:
//
//	p, _ := game.NewPlayer("mia", strat)
//	g, err := game.NewGame(game.DefaultRules(), []*game.Player{p}, rng)
//	results, err := g.PlayRound()
//
// # Deterministic Testing
//
// Randomness enters only through the injected RNG, so a fixed seed
// reproduces every deal:
//
//	rng := randutil.New(42)
//	g, err := game.NewGame(game.DefaultRules(), players, rng)
//
// Tests that need exact card orders swap the shoe entirely:
//
//	g, err := game.NewGame(rules, players, rng, game.WithShoe(stacked))
//
// # Architecture
//
// Game delegates to small focused pieces:
//   - deck.Shoe: shuffled multi-deck card source
//   - Hand: ace-aware value computation
//   - Strategy: pluggable per-player decisions over immutable snapshots
//   - Rules: explicit table configuration, nothing hard-coded
//
// The engine is fully synchronous. One round completes before the next
// begins, and the only suspension point is a strategy blocking for input.
package game
