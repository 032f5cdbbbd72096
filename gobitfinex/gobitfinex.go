package main

import (
	"flag"
)

var cliPair = flag.String("pair", "btc_usd", "Input the pair. ")
var cliProxy = flag.String("proxy", "", "Input the proxy url. ")

var sCommand = map[string]string{
	"ticker": "exchange ticker api",
	"depth":  "exchange depth api",
	"trades": "exchange trades api",
	"candle": "exchange candle api",
	"status": "the platform status",
}

func main() {
	flag.Parse()
	paramCount := flag.NArg()
	firstParam := ""
	if paramCount != 0 {
		firstParam = flag.Arg(0)
	}

	_, exist := sCommand[firstParam]
	if paramCount == 0 || !exist {
		flag.PrintDefaults()
		return
	}

	initClient(*cliProxy)
	runCommand(firstParam)
}
