// Package kubectl implements the simulated kubectl command interpreter.
//
// A raw command string flows through three stages:
//
//  1. ValidatePrefix rejects empty input and anything not starting with "kubectl".
//  2. Parse splits the string into a Command. Resource aliases are folded into
//     a canonical kind once, here, and the namespace is resolved from the
//     flag map ("--namespace=" before "-n", then "default").
//  3. Executor.Run looks the (action, kind) pair up in its route table and
//     renders the result against an injected, read-only catalog.
//
// Every outcome is an ExecutionResult. Failures carry a *CommandError whose
// message mimics kubectl phrasing and which matches one of the Err* sentinels
// through errors.Is. Panics raised while building output are recovered and
// reported as ErrInternalExecution.
//
// Example:
//
//	e := kubectl.NewExecutor(catalog.Default())
//	res := e.Execute("kubectl get pods web-app -n default")
//	if !res.Success {
//		return res.Err
//	}
//	fmt.Print(res.Output)
package kubectl
