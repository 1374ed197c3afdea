// Package serializer bundles encoding/json output with fast-path
// diagnostics, and provides a microbenchmark helper for measuring
// serialization throughput of a fixed tree.
//
// Marshal runs the validator first and then serializes the original tree;
// the diagnostics are advisory only and the optimizer is never applied
// automatically. encoding/json failures (cycles it detects itself,
// unrepresentable numbers) propagate unchanged.
//
//	out, err := serializer.Marshal(tree, serializer.WithIndent("  "))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out.JSON)
//	fmt.Println(out.Validation.Summary)
//
// Benchmark times repeated Marshal calls on one tree and attaches a single
// validation result for context:
//
//	bench, err := serializer.Benchmark(tree, 5000)
package serializer
