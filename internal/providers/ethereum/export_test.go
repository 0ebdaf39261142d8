package ethereum

var LookupMethod = lookupMethod
