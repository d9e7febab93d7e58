package config

// TokenEnvVars are the environment variables checked for the GitHub
// credential, in priority order.
var TokenEnvVars = [2]string{"GITHUB_TOKEN", "GH_TOKEN"}

// LookupEnv matches os.LookupEnv; tests substitute their own.
type LookupEnv func(key string) (string, bool)

// Token returns the GitHub credential from the first set token variable.
// A variable set to the empty string does not count as a credential.
func Token(lookup LookupEnv) (string, bool) {
	for _, name := range TokenEnvVars {
		if val, ok := lookup(name); ok && val != "" {
			return val, true
		}
	}
	return "", false
}
