package rules

var genericExceptions = []string{"java.lang.Exception", "java.lang.Throwable", "java.lang.Error"}

// remoteCallers may surface RemoteException directly
var remoteCallers = []string{"android.content.ContentProviderClient", "android.os.Binder", "android.os.IBinder"}

func checkException(ctx *Context) {
	for _, m := range ctx.Class.Methods {
		for _, t := range m.Throws {
			if oneOf(t.Name, genericExceptions...) {
				ctx.Error(m, "S1", "Methods must not throw generic exceptions")
			}
			if t.Name == "android.os.RemoteException" && !oneOf(ctx.Class.FullName, remoteCallers...) {
				ctx.Error(m, "FW9", "Methods calling into system server should rethrow RemoteException as RuntimeException")
			}
			if len(m.Args) == 0 && oneOf(t.Name, "java.lang.IllegalArgumentException", "java.lang.NullPointerException") {
				ctx.Warn(m, "S1", "Methods taking no arguments should throw IllegalStateException")
			}
		}
	}
}

var runtimeExceptions = []string{
	"java.lang.NullPointerException",
	"java.lang.ClassCastException",
	"java.lang.IndexOutOfBoundsException",
	"java.lang.reflect.UndeclaredThrowableException",
	"java.lang.reflect.MalformedParametersException",
	"java.lang.reflect.MalformedParameterizedTypeException",
	"java.lang.invoke.WrongMethodTypeException",
	"java.lang.EnumConstantNotPresentException",
	"java.lang.IllegalMonitorStateException",
	"java.lang.SecurityException",
	"java.lang.UnsupportedOperationException",
	"java.lang.annotation.AnnotationTypeMismatchException",
	"java.lang.annotation.IncompleteAnnotationException",
	"java.lang.TypeNotPresentException",
	"java.lang.IllegalStateException",
	"java.lang.ArithmeticException",
	"java.lang.IllegalArgumentException",
	"java.lang.ArrayStoreException",
	"java.lang.NegativeArraySizeException",
	"java.util.MissingResourceException",
	"java.util.EmptyStackException",
	"java.util.concurrent.CompletionException",
	"java.util.concurrent.RejectedExecutionException",
	"java.util.IllformedLocaleException",
	"java.util.ConcurrentModificationException",
	"java.util.NoSuchElementException",
	"java.io.UncheckedIOException",
	"java.time.DateTimeException",
	"java.security.ProviderException",
	"java.nio.BufferUnderflowException",
	"java.nio.BufferOverflowException",
}

func checkRuntimeExceptions(ctx *Context) {
	for _, m := range invocables(ctx.Class) {
		for _, t := range m.Throws {
			if oneOf(t.Name, runtimeExceptions...) {
				ctx.Error(m, "", "Methods must not mention RuntimeException subclasses in throws clauses")
			}
		}
	}
}
