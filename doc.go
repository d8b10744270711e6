// Package weld resolves the complete dependency-injection binding graph
// for a statically declared injector and its nested private scopes.
//
// An injector definition names the methods a generated injector must serve
// and the modules contributing bindings. The pipeline validates the method
// shapes, loads the modules, visits their declarative elements into a scope
// tree, then resolves every scope bottom-up: children finish before their
// parents because implicit bindings created in a child can push new
// requirements upward. Keys a scope cannot satisfy escalate to its parent;
// keys that reach the root unsatisfied are missing-binding errors.
//
// Errors never abort a phase midway. Each component records everything it
// finds into the run's Collector and the pipeline stops only at the
// checkpoint after the phase. The resolved scope tree is handed to a
// downstream generator; this package produces no artifacts itself.
package weld
